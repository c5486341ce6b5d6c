// Package rbac provides role-based access control middleware for the
// storefront's page routes.
package rbac

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
)

// Require returns middleware that lets a request through only when the
// session identity satisfies required. Everyone else is redirected to
// fallback with 302.
//
//	admin := r.Group("/admin", rbac.Require(auth.RoleAdmin, "/login"))
func Require(required auth.Role, fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.Current(session.FromCtx(r))
			if !auth.Allows(id, required) {
				logger.WithCtx(r.Context()).Debug("access denied",
					"path", r.URL.Path,
					"required", string(required),
					"authenticated", id != nil,
				)
				http.Redirect(w, r, fallback, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticated is Require(auth.RoleAny, fallback).
func Authenticated(fallback string) func(http.Handler) http.Handler {
	return Require(auth.RoleAny, fallback)
}
