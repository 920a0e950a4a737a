package handler

import (
	"errors"
	"net/http"

	"facturador/internal/apierror"
	"facturador/internal/client"

	"github.com/gin-gonic/gin"
)

// UsuariosHandler proxies the console account list from the remote backend.
// Read-only: accounts are managed there, the console only shows them.
type UsuariosHandler struct {
	backend *client.Backend
}

func NewUsuariosHandler(backend *client.Backend) *UsuariosHandler {
	return &UsuariosHandler{backend: backend}
}

// sesion binds the remote client to the caller's own token.
func (h *UsuariosHandler) sesion(c *gin.Context) *client.Backend {
	return h.backend.ConToken(c.GetHeader("Authorization"))
}

// Listar — GET /v1/usuarios
func (h *UsuariosHandler) Listar(c *gin.Context) {
	usuarios, err := h.sesion(c).ListarUsuarios(c.Request.Context())
	if err != nil {
		if errors.Is(err, client.ErrSesionExpirada) {
			c.JSON(http.StatusUnauthorized, apierror.New("Sesion expirada"))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}
