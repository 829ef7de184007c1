// Package response writes the SignLib API envelope: {"data": ..., "error": ...}.
// Exactly one of the two fields is non-null.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the failure half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data.
func Success(data any) Response { return Response{Data: data} }

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp with status. Encoding errors after the header is sent
// are dropped.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) { JSON(w, http.StatusOK, Success(data)) }

// Created writes data with 201.
func Created(w http.ResponseWriter, data any) { JSON(w, http.StatusCreated, Success(data)) }

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail(CodeBadRequest, message, details))
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail(CodeNotFound, message, details))
}

// MethodNotAllowed writes a 405 naming method.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed,
		Fail(CodeMethodNotAllowed, "Method not allowed", "Method "+method+" is not supported for this endpoint"))
}

// InternalError writes a 500. err is never shown to the caller.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError,
		Fail(CodeInternal, "Internal server error", "An unexpected error occurred"))
}

// ServiceUnavailable writes a 503 with message as details.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(CodeUnavailable, "Service unavailable", message))
}
