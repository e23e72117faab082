package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/servicehub/app/services"
	"github.com/shashiranjanraj/servicehub/pkg/ctx"
	"github.com/shashiranjanraj/servicehub/pkg/session"
)

type AuthController struct {
	service *services.AuthService
	cookies session.Cookies
}

func NewAuthController(service *services.AuthService, cookies session.Cookies) *AuthController {
	return &AuthController{service: service, cookies: cookies}
}

// Register handles POST /api/auth/register.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	id, err := a.service.Register(c.Context(), in)
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		c.Error(http.StatusConflict, "Email already registered")
	case err != nil:
		c.Fail(err)
	default:
		c.OK(map[string]any{"userId": id})
	}
}

// Login handles POST /api/auth/login. The token only travels in the cookie.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	token, err := a.service.Login(c.Context(), in)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		c.Fail(err)
	default:
		a.cookies.Set(c.W, token)
		c.OK(nil)
	}
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (a *AuthController) Logout(c *ctx.Context) {
	a.cookies.Clear(c.W)
	c.OK(nil)
}
