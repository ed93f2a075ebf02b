package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/auth"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type AuthHandler struct {
	m *mediator.Mediator
}

func NewAuthHandler(m *mediator.Mediator) *AuthHandler {
	return &AuthHandler{m: m}
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterCommand
	if !bindJSON(c, &req) {
		return
	}
	reply[auth.RegisterCommand, auth.UserDTO](c, ah.m, req, http.StatusCreated)
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginCommand
	if !bindJSON(c, &req) {
		return
	}
	reply[auth.LoginCommand, auth.LoginResponse](c, ah.m, req, http.StatusOK)
}

// GET /api/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	reply[auth.MeQuery, auth.UserDTO](c, ah.m, auth.MeQuery{}, http.StatusOK)
}
