// Package ctx provides the per-request context storefront handlers receive.
//
// Instead of (http.ResponseWriter, *http.Request) a handler takes one
// *Context carrying the request, the response, the session and the
// logged-in identity:
//
//	func (c *CartController) Remove(x *ctx.Context) {
//	    id, err := x.FormUint("productId")
//	    ...
//	    x.Redirect(http.StatusFound, "/cart")
//	}
//
//	r.Post("/cart/remove", "cart.remove", ctx.Wrap(cart.Remove))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/response"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to an http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request

	sess     *session.Session
	user     *auth.Identity
	userRead bool
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	*c = Context{W: w, R: r}
	return c
}

func release(c *Context) {
	*c = Context{}
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a path parameter as an id.
func (c *Context) ParamUint(key string) (uint, error) {
	return parseID(key, c.Param(key))
}

// PostForm returns a form field from a urlencoded or multipart body.
func (c *Context) PostForm(key string) string {
	return c.R.FormValue(key)
}

// FormUint parses a form field as an id. Failures are apperr.Invalid.
func (c *Context) FormUint(key string) (uint, error) {
	return parseID(key, c.PostForm(key))
}

func parseID(key, raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.E(apperr.Invalid, "parse "+key, fmt.Errorf("bad id %q", raw))
	}
	return uint(n), nil
}

// LimitBody caps the request body at n bytes.
func (c *Context) LimitBody(n int64) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, n)
}

// FormFile returns the uploaded file under key. ok is false when the field
// is absent or empty.
func (c *Context) FormFile(key string) (file multipart.File, hdr *multipart.FileHeader, ok bool, err error) {
	file, hdr, err = c.R.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, apperr.E(apperr.Invalid, "upload "+key, err)
	}
	if hdr.Size == 0 {
		file.Close()
		return nil, nil, false, nil
	}
	return file, hdr, true, nil
}

// ─── Session / identity ───────────────────────────────────────────────────────

// Session returns the request's session.
func (c *Context) Session() *session.Session {
	if c.sess == nil {
		c.sess = session.FromCtx(c.R)
	}
	return c.sess
}

// User returns the logged-in identity, or nil for guests.
func (c *Context) User() *auth.Identity {
	if !c.userRead {
		c.user = auth.Current(c.Session())
		c.userRead = true
	}
	return c.user
}

// Login stores id in a renewed session.
func (c *Context) Login(id auth.Identity) error {
	s := c.Session()
	s.Renew()
	if err := auth.Remember(s, id); err != nil {
		return err
	}
	c.user, c.userRead = &id, true
	return nil
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// HTML renders page name with data. The current user is added as "User".
func (c *Context) HTML(code int, r view.Renderer, name string, data view.Data) {
	if data == nil {
		data = view.Data{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = c.User()
	}

	var buf strings.Builder
	if err := r.Render(&buf, name, data); err != nil {
		c.Logger().Error("render failed", "page", name, "error", err)
		response.InternalError(c.W)
		return
	}

	c.W.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.W.WriteHeader(code)
	_, _ = c.W.Write([]byte(buf.String()))
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	response.Text(c.W, code, fmt.Sprintf(format, args...))
}

// Redirect sends an HTTP redirect response.
func (c *Context) Redirect(code int, url string) {
	http.Redirect(c.W, c.R, url, code)
}

// Fail logs err and answers with msg and the status err's kind maps to.
func (c *Context) Fail(err error, msg string) {
	response.Fail(c.W, c.R, err, msg)
}

