package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/bind"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/response"
	"github.com/shashiranjanraj/bhandar/pkg/session"
)

// AuthController serves registration, login and logout.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, errs, err := c.auth.Register(in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("registration failed", "error", err)
		response.Error(w, http.StatusConflict, "could not create the account")
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	response.Created(w, user)
}

// Login handles POST /auth/login. On success the user id is also
// stored in the session so profile edits can fall back to it.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(in)
	if err != nil {
		response.Unauthorized(w)
		return
	}

	if sess := session.FromCtx(r); sess != nil {
		sess.Set("user_id", user.ID)
		sess.Save(w)
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /auth/logout.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromCtx(r); sess != nil {
		sess.Invalidate()
		sess.Save(w)
	}
	response.Message(w, "logged out", nil)
}
