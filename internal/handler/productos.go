package handler

import (
	"errors"
	"net/http"
	"strconv"

	"facturador/internal/apierror"
	"facturador/internal/client"
	"facturador/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductosHandler proxies the per-empresa product catalog to the remote
// backend. The comprobante form reads this catalog to build line items.
type ProductosHandler struct {
	backend *client.Backend
}

func NewProductosHandler(backend *client.Backend) *ProductosHandler {
	return &ProductosHandler{backend: backend}
}

// sesion binds the remote client to the caller's own token.
func (h *ProductosHandler) sesion(c *gin.Context) *client.Backend {
	return h.backend.ConToken(c.GetHeader("Authorization"))
}

func (h *ProductosHandler) remoto(c *gin.Context, err error) {
	if errors.Is(err, client.ErrSesionExpirada) {
		c.JSON(http.StatusUnauthorized, apierror.New("Sesion expirada"))
		return
	}
	c.Error(err)
}

// Listar — GET /v1/empresas/:empresaId/productos
func (h *ProductosHandler) Listar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	productos, err := h.sesion(c).ListarProductos(c.Request.Context(), eid)
	if err != nil {
		h.remoto(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

type productoRequest struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre" validate:"required"`
	Descripcion   string          `json:"descripcion"`
	ValorUnitario decimal.Decimal `json:"valorUnitario" validate:"required,gt=0"`
	UnidadMedida  string          `json:"unidadMedida"`
}

// Guardar — POST /v1/empresas/:empresaId/productos
func (h *ProductosHandler) Guardar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	var req productoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	guardado, err := h.sesion(c).GuardarProducto(c.Request.Context(), eid, model.Producto{
		ID:            req.ID,
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		ValorUnitario: req.ValorUnitario,
		UnidadMedida:  req.UnidadMedida,
	})
	if err != nil {
		h.remoto(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, guardado)
}

// Eliminar — DELETE /v1/empresas/:empresaId/productos/:id
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.sesion(c).EliminarProducto(c.Request.Context(), eid, id); err != nil {
		h.remoto(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
