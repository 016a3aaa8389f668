package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates a new account. POST /auth/register/
func (ctl *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := ctl.auth.Register(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login exchanges credentials for a token pair. POST /auth/login/
func (ctl *AuthController) Login(c *ctx.Context) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ctl.auth.Login(in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pair)
}

// Refresh rotates a refresh token for a new pair. POST /auth/refresh/
func (ctl *AuthController) Refresh(c *ctx.Context) {
	var in struct {
		Refresh string `json:"refresh" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	pair, err := ctl.auth.Refresh(c.Context(), in.Refresh)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pair)
}

// Profile returns the current user. GET /auth/profile/
func (ctl *AuthController) Profile(c *ctx.Context) {
	user, err := ctl.auth.Profile(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
