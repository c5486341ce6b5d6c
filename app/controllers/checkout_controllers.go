package controllers

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

type CheckoutController struct {
	cart  *services.CartService
	views view.Renderer
}

func NewCheckoutController(cart *services.CartService, views view.Renderer) *CheckoutController {
	return &CheckoutController{cart: cart, views: views}
}

// Checkout shows the bill. An empty cart cannot be checked out.
func (c *CheckoutController) Checkout(x *ctx.Context) {
	bill, err := c.cart.Checkout(x.Context(), x.User().ID)
	if err != nil {
		x.Fail(err, "Error loading checkout page.")
		return
	}
	if bill.Empty() {
		x.Redirect(http.StatusFound, "/cart")
		return
	}
	x.HTML(http.StatusOK, c.views, "checkout", view.Data{"Bill": bill})
}

func (c *CheckoutController) Shipping(x *ctx.Context) {
	x.HTML(http.StatusOK, c.views, "shipping-details", nil)
}

// PlaceOrder empties the cart. Nothing else is recorded.
func (c *CheckoutController) PlaceOrder(x *ctx.Context) {
	if err := c.cart.PlaceOrder(x.Context(), x.User().ID); err != nil {
		x.Fail(err, "Error placing order.")
		return
	}
	x.HTML(http.StatusOK, c.views, "order-placed", nil)
}
