// Package routes maps the storefront's pages onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/controllers"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/rbac"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/router"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/storage"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

// Deps are the collaborators the controllers are built from.
type Deps struct {
	DB        *gorm.DB
	Sessions  *session.Manager
	Views     view.Renderer
	Disk      storage.Disk
	MaxUpload int64
}

var (
	requireAuth  = rbac.Authenticated("/login")
	requireAdmin = rbac.Require(auth.RoleAdmin, "/")
)

func RegisterWeb(r *router.Router, d Deps) {
	authService := services.NewAuthService(repositories.NewUserRepository(d.DB))
	productService := services.NewProductService(d.DB, d.Disk)
	cartService := services.NewCartService(d.DB)

	authController := controllers.NewAuthController(authService, d.Sessions, d.Views)
	storeController := controllers.NewStoreController(productService, d.Views)
	adminController := controllers.NewAdminController(productService, d.Views, d.MaxUpload)
	cartController := controllers.NewCartController(cartService, d.Views)
	checkoutController := controllers.NewCheckoutController(cartService, d.Views)

	r.Get("/", "home", ctx.Wrap(storeController.Index))

	r.Get("/register", "register", ctx.Wrap(authController.ShowRegister))
	r.Post("/register", "register.submit", ctx.Wrap(authController.Register))
	r.Get("/login", "login", ctx.Wrap(authController.ShowLogin))
	r.Post("/login", "login.submit", ctx.Wrap(authController.Login))
	r.Get("/logout", "logout", ctx.Wrap(authController.Logout))

	admin := r.Group("/admin", requireAdmin)
	admin.Get("/", "admin", ctx.Wrap(adminController.Index))
	admin.Post("/add-product", "admin.products.add", ctx.Wrap(adminController.Add))
	admin.Get("/edit-product/{id}", "admin.products.edit", ctx.Wrap(adminController.Edit))
	admin.Post("/update-product", "admin.products.update", ctx.Wrap(adminController.Update))
	admin.Post("/delete-product", "admin.products.delete", ctx.Wrap(adminController.Delete))

	cart := r.Group("/cart", requireAuth)
	cart.Get("/", "cart", ctx.Wrap(cartController.Show))
	cart.Post("/add", "cart.add", ctx.Wrap(cartController.Add))
	cart.Post("/remove", "cart.remove", ctx.Wrap(cartController.Remove))
	cart.Post("/update-quantity", "cart.update_quantity", ctx.Wrap(cartController.UpdateQuantity))

	member := r.Group("/", requireAuth)
	member.Get("/checkout", "checkout", ctx.Wrap(checkoutController.Checkout))
	member.Get("/shipping-details", "checkout.shipping", ctx.Wrap(checkoutController.Shipping))
	member.Post("/place-order", "checkout.place_order", ctx.Wrap(checkoutController.PlaceOrder))
}
