package session

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
)

// Middleware loads the session for every request and saves it right before
// the response headers are sent.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Load(r)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("session load failed", "error", err)
			}

			sw := &saveWriter{ResponseWriter: w, save: func() {
				if err := m.Save(r.Context(), w, sess); err != nil {
					logger.WithCtx(r.Context()).Error("session save failed", "error", err)
				}
			}}

			next.ServeHTTP(sw, r.WithContext(NewContext(r.Context(), sess)))
			sw.flushSession()
		})
	}
}

// saveWriter persists the session once, on the first header or body write.
type saveWriter struct {
	http.ResponseWriter
	save  func()
	fired bool
}

func (w *saveWriter) flushSession() {
	if w.fired {
		return
	}
	w.fired = true
	w.save()
}

func (w *saveWriter) WriteHeader(code int) {
	w.flushSession()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) Write(b []byte) (int, error) {
	w.flushSession()
	return w.ResponseWriter.Write(b)
}

func (w *saveWriter) Flush() {
	w.flushSession()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *saveWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("session: underlying writer cannot hijack")
}

func (w *saveWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
