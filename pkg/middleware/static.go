package middleware

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Static serves GET and HEAD requests for files that exist in fsys and hands
// everything else to the next handler. Directories are never listed.
//
//	r.Use(middleware.Static(resources.Public()))
func Static(fsys fs.FS) func(http.Handler) http.Handler {
	files := http.FileServer(http.FS(fsys))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
			if name == "" || name == "." {
				next.ServeHTTP(w, r)
				return
			}

			info, err := fs.Stat(fsys, name)
			if err != nil || info.IsDir() {
				next.ServeHTTP(w, r)
				return
			}

			files.ServeHTTP(w, r)
		})
	}
}
