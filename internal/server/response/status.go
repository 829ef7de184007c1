package response

import (
	"net/http"

	"github.com/agentstation/signlib/pkg/errors"
)

// Error codes.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeNoVideos         = "NO_VIDEOS"
	CodeStorageFull      = "STORAGE_FULL"
	CodeCanceled         = "CANCELED"
	CodeImportFailed     = "IMPORT_FAILED"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

type rule struct {
	match  func(error) bool
	status int
	code   string
}

// Checked in order; cancellation outranks the import failure it is wrapped in.
var rules = []rule{
	{errors.IsNotFound, http.StatusNotFound, CodeNotFound},
	{errors.IsNoVideos, http.StatusUnprocessableEntity, CodeNoVideos},
	{errors.IsValidationError, http.StatusBadRequest, CodeBadRequest},
	{errors.IsQuotaExceeded, http.StatusInsufficientStorage, CodeStorageFull},
	{errors.IsCanceled, http.StatusServiceUnavailable, CodeCanceled},
	{isImportError, http.StatusUnprocessableEntity, CodeImportFailed},
}

func isImportError(err error) bool {
	var ie *errors.ImportError
	return errors.As(err, &ie)
}

// Status maps an error to its HTTP status and error code.
func Status(err error) (int, string) {
	for _, r := range rules {
		if r.match(err) {
			return r.status, r.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// ErrorFromType writes err with the status Status picks. Unrecognized
// errors become an opaque 500.
func ErrorFromType(w http.ResponseWriter, err error) {
	status, code := Status(err)
	if code == CodeInternal {
		InternalError(w, err)
		return
	}
	JSON(w, status, Fail(code, err.Error(), ""))
}
