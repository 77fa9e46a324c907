package controllers

import (
	"net/http"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{service: s}
}

// Login answers {success,message}. It is not enveloped because the admin
// client only looks at the success flag.
func (h *AuthController) Login(c *ctx.Context) {
	var body struct {
		Password string `json:"password"`
	}
	if !c.BindJSON(&body) {
		return
	}

	result := h.service.Login(body.Password)
	if !result.Success {
		c.Raw(http.StatusUnauthorized, result)
		return
	}
	c.Raw(http.StatusOK, result)
}
