package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type AccountController struct {
	auth *services.AuthService
}

func NewAccountController(auth *services.AuthService) *AccountController {
	return &AccountController{auth: auth}
}

// Register handles POST /api/account/register.
func (ac *AccountController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	res, err := ac.auth.Register(c.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(res)
}

// Login handles POST /api/account/login.
func (ac *AccountController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	res, err := ac.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(res)
}

// Profile handles GET /api/account/profile.
func (ac *AccountController) Profile(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Unauthorized()
		return
	}

	user, err := ac.auth.Profile(c.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(user)
}
