package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"

	"facturador/internal/apierror"
	"facturador/internal/client"
	"facturador/internal/infra"
	"facturador/internal/model"
	"facturador/internal/service"

	"github.com/gin-gonic/gin"
)

// ComprobantesHandler exposes the comprobante workflow of each empresa.
// It keeps one ComprobanteService per empresa scope, constructed on first
// use; switching empresas in the console simply hits a different scope,
// which loads its own collection from the store.
type ComprobantesHandler struct {
	mu        sync.Mutex
	servicios map[int64]service.ComprobanteService
	nuevo     func(empresaID int64) service.ComprobanteService

	backend *client.Backend
	pdfDir  string
}

func NewComprobantesHandler(nuevo func(empresaID int64) service.ComprobanteService, backend *client.Backend, pdfDir string) *ComprobantesHandler {
	return &ComprobantesHandler{
		servicios: make(map[int64]service.ComprobanteService),
		nuevo:     nuevo,
		backend:   backend,
		pdfDir:    pdfDir,
	}
}

// sesion binds the remote client to the caller's own token.
func (h *ComprobantesHandler) sesion(c *gin.Context) *client.Backend {
	return h.backend.ConToken(c.GetHeader("Authorization"))
}

func (h *ComprobantesHandler) servicio(ctx context.Context, empresaID int64) service.ComprobanteService {
	h.mu.Lock()
	defer h.mu.Unlock()
	if svc, ok := h.servicios[empresaID]; ok {
		return svc
	}
	svc := h.nuevo(empresaID)
	svc.Cargar(ctx)
	h.servicios[empresaID] = svc
	return svc
}

func empresaID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("empresaId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("empresaId invalido"))
		return 0, false
	}
	return id, true
}

// ── collection ───────────────────────────────────────────────────────────────

// Listar returns the empresa's full comprobante collection.
// GET /v1/empresas/:empresaId/comprobantes
func (h *ComprobantesHandler) Listar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	c.JSON(http.StatusOK, svc.Comprobantes())
}

// Guardar creates (id 0) or updates a comprobante.
// POST /v1/empresas/:empresaId/comprobantes
func (h *ComprobantesHandler) Guardar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}

	var comprobante model.Comprobante
	if err := c.ShouldBindJSON(&comprobante); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}

	esNuevo := comprobante.ID == 0
	svc := h.servicio(c.Request.Context(), eid)
	guardado, err := svc.Guardar(c.Request.Context(), comprobante)
	if err != nil {
		if errores, ok := err.(service.ErroresValidacion); ok {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(errores))
			return
		}
		c.Error(err)
		return
	}

	status := http.StatusOK
	if esNuevo {
		status = http.StatusCreated
	}
	c.JSON(status, guardado)
}

// Eliminar removes a comprobante after confirmation. The browser shows the
// dialog and re-issues the request with confirmado=true; without it the
// operation resolves as declined and nothing changes.
// DELETE /v1/empresas/:empresaId/comprobantes/:id?confirmado=true
func (h *ComprobantesHandler) Eliminar(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}

	ctx := service.ConfirmacionEnContexto(c.Request.Context(), c.Query("confirmado") == "true")
	svc := h.servicio(c.Request.Context(), eid)
	eliminado := svc.Eliminar(ctx, id)
	c.JSON(http.StatusOK, gin.H{"eliminado": eliminado})
}

// ── editing form ─────────────────────────────────────────────────────────────

type estadoForm struct {
	Seleccionado model.Comprobante         `json:"seleccionado"`
	Visible      bool                      `json:"visible"`
	Errores      service.ErroresValidacion `json:"errores"`
}

// Form returns the current draft, its visibility and the last ErrorSet.
// GET /v1/empresas/:empresaId/comprobante-form
func (h *ComprobantesHandler) Form(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	c.JSON(http.StatusOK, estadoForm{
		Seleccionado: svc.Seleccionado(),
		Visible:      svc.FormVisible(),
		Errores:      svc.Errores(),
	})
}

// AbrirForm resets the draft to defaults (today's fecha, empty items) and
// opens the form for creation.
// POST /v1/empresas/:empresaId/comprobante-form
func (h *ComprobantesHandler) AbrirForm(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	svc.AbrirForm()
	c.JSON(http.StatusOK, svc.Seleccionado())
}

// CerrarForm discards the draft and clears the ErrorSet.
// DELETE /v1/empresas/:empresaId/comprobante-form
func (h *ComprobantesHandler) CerrarForm(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	svc.CerrarForm()
	c.Status(http.StatusNoContent)
}

// SeleccionarForm loads an existing comprobante into the draft for editing.
// PUT /v1/empresas/:empresaId/comprobante-form/:id
func (h *ComprobantesHandler) SeleccionarForm(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}

	svc := h.servicio(c.Request.Context(), eid)
	for _, comprobante := range svc.Comprobantes() {
		if comprobante.ID == id {
			svc.SeleccionarForm(comprobante)
			c.JSON(http.StatusOK, svc.Seleccionado())
			return
		}
	}
	c.JSON(http.StatusNotFound, apierror.New("Comprobante no encontrado"))
}

type agregarItemRequest struct {
	Producto model.Producto `json:"producto" validate:"required"`
}

type actualizarCantidadRequest struct {
	// Raw form value; the aggregator parses it and drops the item on <= 0.
	Cantidad string `json:"cantidad" validate:"required"`
}

// AgregarItem adds one unit of a producto to the draft.
// POST /v1/empresas/:empresaId/comprobante-form/items
func (h *ComprobantesHandler) AgregarItem(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	var req agregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	svc.AgregarProducto(req.Producto)
	c.JSON(http.StatusOK, svc.Seleccionado())
}

// ActualizarCantidad updates the quantity of one draft item.
// PATCH /v1/empresas/:empresaId/comprobante-form/items/:productoId
func (h *ComprobantesHandler) ActualizarCantidad(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	productoID, err := strconv.ParseInt(c.Param("productoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("productoId invalido"))
		return
	}
	var req actualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	svc.ActualizarCantidad(productoID, req.Cantidad)
	c.JSON(http.StatusOK, svc.Seleccionado())
}

// EliminarItem removes one draft item.
// DELETE /v1/empresas/:empresaId/comprobante-form/items/:productoId
func (h *ComprobantesHandler) EliminarItem(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	productoID, err := strconv.ParseInt(c.Param("productoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("productoId invalido"))
		return
	}
	svc := h.servicio(c.Request.Context(), eid)
	svc.EliminarItem(productoID)
	c.JSON(http.StatusOK, svc.Seleccionado())
}

// ── PDF export ───────────────────────────────────────────────────────────────

// DescargarPDF renders a comprobante as a printable ticket.
// GET /v1/empresas/:empresaId/comprobantes/:id/pdf
func (h *ComprobantesHandler) DescargarPDF(c *gin.Context) {
	eid, ok := empresaID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}

	svc := h.servicio(c.Request.Context(), eid)
	for _, comprobante := range svc.Comprobantes() {
		if comprobante.ID != id {
			continue
		}

		// Best effort: the ticket header falls back to a generic title when
		// the empresa cannot be resolved.
		razonSocial := ""
		if h.backend != nil {
			if empresas, lerr := h.sesion(c).ListarEmpresas(c.Request.Context()); lerr == nil {
				for _, e := range empresas {
					if e.ID == eid {
						razonSocial = e.RazonSocial
						break
					}
				}
			}
		}

		path, perr := infra.GenerarComprobantePDF(&comprobante, razonSocial, h.pdfDir)
		if perr != nil {
			c.Error(perr)
			return
		}
		c.FileAttachment(path, filepath.Base(path))
		return
	}
	c.JSON(http.StatusNotFound, apierror.New("Comprobante no encontrado"))
}
