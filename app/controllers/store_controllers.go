package controllers

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

type StoreController struct {
	products *services.ProductService
	views    view.Renderer
}

func NewStoreController(products *services.ProductService, views view.Renderer) *StoreController {
	return &StoreController{products: products, views: views}
}

// Index renders the public catalog.
func (c *StoreController) Index(x *ctx.Context) {
	products, err := c.products.List(x.Context())
	if err != nil {
		x.Fail(err, "Error loading products.")
		return
	}
	x.HTML(http.StatusOK, c.views, "index", view.Data{"Products": products})
}
