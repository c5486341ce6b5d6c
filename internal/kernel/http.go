// Package kernel assembles the storefront's HTTP handler: global middleware,
// the metrics endpoint, uploaded files and the page routes.
package kernel

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/routes"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/metrics"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/middleware"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/reqid"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/router"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/storage"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
	"github.com/Eswaramoorthy-2004/my-ecom-store/resources"
)

// Deps are the long-lived services the kernel wires together.
type Deps struct {
	DB        *gorm.DB
	Sessions  *session.Manager
	Views     view.Renderer
	Storage   *storage.Manager
	MaxUpload int64
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Global middleware, outermost first:
//
//  1. Prometheus metrics, for total latency
//  2. Recovery
//  3. Request ID
//  4. Logger, tagged with the request id
//  5. Static assets, answered before any session work
//  6. Session load/save
func NewHTTPKernel(d Deps) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Static(resources.Public()))
	if d.Sessions != nil {
		r.Use(d.Sessions.Middleware())
	}

	r.Handle("/metrics", "metrics", metrics.Handler())

	var disk storage.Disk
	if d.Storage != nil {
		disk = d.Storage.Default()
		// Only a path-style base URL is served by this process.
		if local, ok := d.Storage.Local(); ok && strings.HasPrefix(local.BaseURL(), "/") {
			prefix := local.BaseURL()
			r.Mount(prefix, "storage", http.StripPrefix(prefix, local.Handler()))
		}
	}

	routes.RegisterWeb(r, routes.Deps{
		DB:        d.DB,
		Sessions:  d.Sessions,
		Views:     d.Views,
		Disk:      disk,
		MaxUpload: d.MaxUpload,
	})

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }
