package controllers

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

// CartController serves the cart routes. They all sit behind the
// logged-in guard, so x.User() is never nil here.
type CartController struct {
	cart  *services.CartService
	views view.Renderer
}

func NewCartController(cart *services.CartService, views view.Renderer) *CartController {
	return &CartController{cart: cart, views: views}
}

func (c *CartController) Show(x *ctx.Context) {
	cart, err := c.cart.View(x.Context(), x.User().ID)
	if err != nil {
		x.Fail(err, "Error loading cart.")
		return
	}
	x.HTML(http.StatusOK, c.views, "cart", view.Data{"Cart": cart})
}

func (c *CartController) Add(x *ctx.Context) {
	id, err := x.FormUint("productId")
	if err == nil {
		err = c.cart.Add(x.Context(), x.User().ID, id)
	}
	if err != nil {
		x.Fail(err, "Error adding to cart.")
		return
	}
	x.Redirect(http.StatusFound, "/")
}

func (c *CartController) Remove(x *ctx.Context) {
	id, err := x.FormUint("productId")
	if err == nil {
		err = c.cart.Remove(x.Context(), x.User().ID, id)
	}
	if err != nil {
		x.Fail(err, "Error removing from cart.")
		return
	}
	x.Redirect(http.StatusFound, "/cart")
}

func (c *CartController) UpdateQuantity(x *ctx.Context) {
	id, err := x.FormUint("productId")
	if err == nil {
		err = c.cart.UpdateQuantity(x.Context(), x.User().ID, id, x.PostForm("action"))
	}
	if err != nil {
		x.Fail(err, "Error updating quantity.")
		return
	}
	x.Redirect(http.StatusFound, "/cart")
}
