package handler

import (
	"errors"
	"net/http"
	"strconv"

	"facturador/internal/apierror"
	"facturador/internal/client"
	"facturador/internal/model"

	"github.com/gin-gonic/gin"
)

// EmpresasHandler proxies empresa CRUD to the remote backend, which owns
// the data. A 401 from the backend is surfaced as such so the console can
// drop the session.
type EmpresasHandler struct {
	backend *client.Backend
}

func NewEmpresasHandler(backend *client.Backend) *EmpresasHandler {
	return &EmpresasHandler{backend: backend}
}

// sesion binds the remote client to the caller's own token.
func (h *EmpresasHandler) sesion(c *gin.Context) *client.Backend {
	return h.backend.ConToken(c.GetHeader("Authorization"))
}

func (h *EmpresasHandler) remoto(c *gin.Context, err error) {
	if errors.Is(err, client.ErrSesionExpirada) {
		c.JSON(http.StatusUnauthorized, apierror.New("Sesion expirada"))
		return
	}
	c.Error(err)
}

// Listar — GET /v1/empresas
func (h *EmpresasHandler) Listar(c *gin.Context) {
	empresas, err := h.sesion(c).ListarEmpresas(c.Request.Context())
	if err != nil {
		h.remoto(c, err)
		return
	}
	c.JSON(http.StatusOK, empresas)
}

type empresaRequest struct {
	ID          int64  `json:"id"`
	RazonSocial string `json:"razonSocial" validate:"required"`
	Ruc         string `json:"ruc" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Direccion   string `json:"direccion"`
}

// Guardar — POST /v1/empresas (creates on id 0, updates otherwise)
func (h *EmpresasHandler) Guardar(c *gin.Context) {
	var req empresaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	guardada, err := h.sesion(c).GuardarEmpresa(c.Request.Context(), model.Empresa{
		ID:          req.ID,
		RazonSocial: req.RazonSocial,
		Ruc:         req.Ruc,
		Email:       req.Email,
		Direccion:   req.Direccion,
	})
	if err != nil {
		h.remoto(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, guardada)
}

// Eliminar — DELETE /v1/empresas/:empresaId
func (h *EmpresasHandler) Eliminar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("empresaId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("empresaId invalido"))
		return
	}
	if err := h.sesion(c).EliminarEmpresa(c.Request.Context(), id); err != nil {
		h.remoto(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
