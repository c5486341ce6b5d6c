package controllers

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

type AdminController struct {
	products  *services.ProductService
	views     view.Renderer
	maxUpload int64
}

func NewAdminController(products *services.ProductService, views view.Renderer, maxUpload int64) *AdminController {
	return &AdminController{products: products, views: views, maxUpload: maxUpload}
}

// Index renders the product table with add, edit and delete controls.
func (c *AdminController) Index(x *ctx.Context) {
	products, err := c.products.List(x.Context())
	if err != nil {
		x.Fail(err, "Error loading admin page.")
		return
	}
	x.HTML(http.StatusOK, c.views, "admin", view.Data{"Products": products})
}

// Add handles POST /admin/add-product.
func (c *AdminController) Add(x *ctx.Context) {
	c.limit(x)
	in, uploaded, err := c.input(x)
	if err == nil {
		_, err = c.products.Create(x.Context(), in)
	}
	if err != nil {
		c.discard(x, in, uploaded)
		x.Fail(err, "Error adding product.")
		return
	}
	x.Redirect(http.StatusFound, "/admin")
}

// Edit renders the pre-filled form. Unknown ids go back to the list.
func (c *AdminController) Edit(x *ctx.Context) {
	id, err := x.ParamUint("id")
	if err != nil {
		x.Redirect(http.StatusFound, "/admin")
		return
	}

	p, err := c.products.Find(x.Context(), id)
	if apperr.Is(err, apperr.NotFound) {
		x.Redirect(http.StatusFound, "/admin")
		return
	}
	if err != nil {
		x.Fail(err, "Error loading edit page.")
		return
	}
	x.HTML(http.StatusOK, c.views, "edit-product", view.Data{"Product": p})
}

// Update handles POST /admin/update-product. The id is checked before any
// upload is stored.
func (c *AdminController) Update(x *ctx.Context) {
	c.limit(x)
	id, err := x.FormUint("productId")
	if err != nil {
		x.Fail(err, "Error updating product.")
		return
	}
	in, uploaded, err := c.input(x)
	if err == nil {
		err = c.products.Update(x.Context(), id, in)
	}
	if err != nil {
		c.discard(x, in, uploaded)
		x.Fail(err, "Error updating product.")
		return
	}
	x.Redirect(http.StatusFound, "/admin")
}

// Delete handles POST /admin/delete-product.
func (c *AdminController) Delete(x *ctx.Context) {
	id, err := x.FormUint("productId")
	if err == nil {
		err = c.products.Delete(x.Context(), id)
	}
	if err != nil {
		x.Fail(err, "Error deleting product.")
		return
	}
	x.Redirect(http.StatusFound, "/admin")
}

func (c *AdminController) limit(x *ctx.Context) {
	if c.maxUpload > 0 {
		x.LimitBody(c.maxUpload)
	}
}

// input reads the product form. An uploaded image replaces imageUrl;
// uploaded reports that one was stored.
func (c *AdminController) input(x *ctx.Context) (in services.ProductInput, uploaded bool, err error) {
	in = services.ProductInput{
		Name:        x.PostForm("name"),
		Description: x.PostForm("description"),
		Price:       x.PostForm("price"),
		ImageURL:    x.PostForm("imageUrl"),
	}

	file, hdr, ok, err := x.FormFile("image")
	if err != nil || !ok {
		return in, false, err
	}
	defer file.Close()

	url, err := c.products.SaveImage(x.Context(), hdr.Filename, file)
	if err != nil {
		return in, false, err
	}
	in.ImageURL = url
	return in, true, nil
}

// discard removes an image stored for a request that then failed.
func (c *AdminController) discard(x *ctx.Context, in services.ProductInput, uploaded bool) {
	if uploaded {
		c.products.RemoveImage(x.Context(), in.ImageURL)
	}
}
