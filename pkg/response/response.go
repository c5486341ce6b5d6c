// Package response writes the plain-text error bodies of the storefront and
// maps apperr kinds to HTTP status codes.
package response

import (
	"fmt"
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
)

// Text writes msg as a text/plain body.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprint(w, msg) //nolint:errcheck
}

// StatusFor maps an error's kind to an HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Invalid:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Fail logs err with the request's logger and answers with msg. The client
// never sees err itself.
func Fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := StatusFor(err)
	log := logger.WithCtx(r.Context())

	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "kind", apperr.KindOf(err).String(), "path", r.URL.Path)
	} else {
		log.Warn("request rejected", "error", err, "kind", apperr.KindOf(err).String(), "path", r.URL.Path)
	}

	Text(w, status, msg)
}

// InternalError answers 500 with a generic body.
func InternalError(w http.ResponseWriter) {
	Text(w, http.StatusInternalServerError, "Internal Server Error")
}
