package controllers

import (
	"net/http"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/services"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/ctx"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
)

type AuthController struct {
	service  *services.AuthService
	sessions *session.Manager
	views    view.Renderer
}

func NewAuthController(service *services.AuthService, sessions *session.Manager, views view.Renderer) *AuthController {
	return &AuthController{service: service, sessions: sessions, views: views}
}

// ShowRegister renders GET /register.
func (c *AuthController) ShowRegister(x *ctx.Context) {
	x.HTML(http.StatusOK, c.views, "register", nil)
}

// Register handles POST /register.
func (c *AuthController) Register(x *ctx.Context) {
	if _, err := c.service.Register(x.Context(), x.PostForm("email"), x.PostForm("password")); err != nil {
		x.Fail(err, "Error registering user. Email might already be taken.")
		return
	}
	x.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders GET /login.
func (c *AuthController) ShowLogin(x *ctx.Context) {
	x.HTML(http.StatusOK, c.views, "login", nil)
}

// Login handles POST /login. Both kinds of bad credentials land back on the
// login page.
func (c *AuthController) Login(x *ctx.Context) {
	id, err := c.service.Login(x.Context(), x.PostForm("email"), x.PostForm("password"))
	if apperr.Is(err, apperr.Unauthenticated) {
		x.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		x.Fail(err, "An error occurred.")
		return
	}

	if err := x.Login(id); err != nil {
		x.Fail(apperr.E(apperr.Store, "auth.login", err), "An error occurred.")
		return
	}
	x.Logger().Info("user logged in", "user_id", id.ID)
	x.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout.
// The identity is dropped first so a failed Destroy still logs the user out
// once the session is saved.
func (c *AuthController) Logout(x *ctx.Context) {
	auth.Forget(x.Session())
	if err := c.sessions.Destroy(x.Context(), x.Session()); err != nil {
		x.Logger().Error("logout failed", "error", err)
		x.Redirect(http.StatusFound, "/")
		return
	}
	x.Redirect(http.StatusFound, "/login")
}
