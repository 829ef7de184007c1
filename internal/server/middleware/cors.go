package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSConfig lists what cross-origin callers may do. An empty
// AllowedOrigins, or AllowAll, answers every origin with "*".
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	AllowAll       bool
	MaxAge         time.Duration
}

// DefaultCORSConfig allows the verbs the API serves from any origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		MaxAge:         24 * time.Hour,
	}
}

// CORS sets the Access-Control headers and answers OPTIONS preflights
// with 204 without calling next.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	listed := config.AllowedOrigins
	anyOrigin := config.AllowAll || len(listed) == 0 || (len(listed) == 1 && listed[0] == "*")
	origins := make(map[string]struct{}, len(listed))
	for _, o := range listed {
		origins[o] = struct{}{}
	}
	// "*" mixed with named origins echoes the caller's origin.
	_, echoAny := origins["*"]

	static := map[string]string{
		"Access-Control-Allow-Methods":  strings.Join(config.AllowedMethods, ", "),
		"Access-Control-Allow-Headers":  strings.Join(config.AllowedHeaders, ", "),
		"Access-Control-Expose-Headers": RequestIDHeader,
	}
	if config.MaxAge > 0 {
		static["Access-Control-Max-Age"] = strconv.Itoa(int(config.MaxAge.Seconds()))
	}

	allow := func(h http.Header, origin string) {
		if anyOrigin {
			h.Set("Access-Control-Allow-Origin", "*")
			return
		}
		if origin == "" {
			return
		}
		if _, ok := origins[origin]; ok || echoAny {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			allow(h, r.Header.Get("Origin"))
			for k, v := range static {
				h.Set(k, v)
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
