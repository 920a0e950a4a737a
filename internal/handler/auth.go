package handler

import (
	"net/http"

	"facturador/internal/apierror"
	"facturador/internal/client"

	"github.com/gin-gonic/gin"
)

// AuthHandler forwards login to the remote backend and hands the issued
// token back to the browser. The console never stores credentials.
type AuthHandler struct {
	backend *client.Backend
}

func NewAuthHandler(backend *client.Backend) *AuthHandler {
	return &AuthHandler{backend: backend}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login — POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	token, err := h.backend.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}

	c.Header("Authorization", token)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": h.backend.ConToken(token).Username(),
	})
}
