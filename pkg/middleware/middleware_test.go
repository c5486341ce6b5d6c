package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/reqid"
)

func TestRecoveryAnswers500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", rec.Body.String())
}

func TestLoggerTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = logger.New(&buf, "production")
	t.Cleanup(func() { logger.L = prev })

	h := reqid.Middleware()(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.WithCtx(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"msg":"inside"`)
	assert.Contains(t, out, `"request_id":"abc-123"`)
	assert.Contains(t, out, `"status":418`)
}

func TestStatic(t *testing.T) {
	fsys := fstest.MapFS{
		"css/style.css": {Data: []byte("body{}")},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Static(fsys)(next)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/css/style.css", http.StatusOK},
		{http.MethodGet, "/css", http.StatusNoContent},
		{http.MethodGet, "/", http.StatusNoContent},
		{http.MethodGet, "/cart", http.StatusNoContent},
		{http.MethodPost, "/css/style.css", http.StatusNoContent},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Code, tc.method+" "+tc.path)
	}
}
