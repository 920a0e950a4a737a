package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"facturador/internal/model"
	"facturador/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ComprobanteService owns the comprobante collection of exactly one empresa
// and the editing workflow around it. One instance is constructed per
// empresa scope and passed explicitly to its consumers; there is no shared
// ambient state.
//
// The editing workflow moves between three states: closed (no form, draft
// reset), open-create (draft with ID 0) and open-edit (draft loaded from an
// existing comprobante). Guardar and Eliminar mutate the collection through
// the pure reducer, persist the whole collection best-effort and notify the
// user. A store failure never rolls back the in-memory mutation and never
// blocks the notification.
type ComprobanteService interface {
	EmpresaID() int64
	Comprobantes() []model.Comprobante
	Seleccionado() model.Comprobante
	FormVisible() bool
	Errores() ErroresValidacion

	Cargar(ctx context.Context)
	AbrirForm()
	CerrarForm()
	SeleccionarForm(c model.Comprobante)

	AgregarProducto(p model.Producto)
	ActualizarCantidad(productoID int64, cantidad string)
	EliminarItem(productoID int64)

	Guardar(ctx context.Context, c model.Comprobante) (*model.Comprobante, error)
	Eliminar(ctx context.Context, id int64) bool
}

type comprobanteService struct {
	empresaID   int64
	store       store.ComprobanteStore
	confirmador Confirmador
	notificador Notificador
	ahora       func() time.Time

	mu           sync.Mutex
	comprobantes []model.Comprobante
	seleccionado model.Comprobante
	formVisible  bool
	errores      ErroresValidacion
	ultimoID     int64
}

func NewComprobanteService(empresaID int64, st store.ComprobanteStore, confirmador Confirmador, notificador Notificador) ComprobanteService {
	s := &comprobanteService{
		empresaID:    empresaID,
		store:        st,
		confirmador:  confirmador,
		notificador:  notificador,
		ahora:        time.Now,
		comprobantes: []model.Comprobante{},
		errores:      ErroresValidacion{},
	}
	s.seleccionado = s.borradorInicial()
	return s
}

// ── accessors ────────────────────────────────────────────────────────────────

func (s *comprobanteService) EmpresaID() int64 { return s.empresaID }

func (s *comprobanteService) Comprobantes() []model.Comprobante {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Comprobante{}, s.comprobantes...)
}

func (s *comprobanteService) Seleccionado() model.Comprobante {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seleccionado
}

func (s *comprobanteService) FormVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formVisible
}

func (s *comprobanteService) Errores() ErroresValidacion {
	s.mu.Lock()
	defer s.mu.Unlock()
	errores := ErroresValidacion{}
	for campo, msg := range s.errores {
		errores[campo] = msg
	}
	return errores
}

// ── collection ───────────────────────────────────────────────────────────────

// Cargar replaces the in-memory collection with whatever the store holds
// for this empresa. Called once per scope; the store degrades to an empty
// collection on any read failure.
func (s *comprobanteService) Cargar(ctx context.Context) {
	comprobantes := s.store.Cargar(ctx, s.empresaID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comprobantes = reducir(s.comprobantes, cargarComprobantes{comprobantes})
}

// Guardar validates the draft and either appends it (ID 0: assigns a fresh
// id, serial number and fecha default) or replaces the matching entry in
// place, keeping its original numeroComprobante. The total is always
// recomputed from the items so it can never drift from their subtotals.
func (s *comprobanteService) Guardar(ctx context.Context, c model.Comprobante) (*model.Comprobante, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errores := ValidarComprobante(c); len(errores) > 0 {
		s.errores = errores
		return nil, errores
	}

	c.Total = CalcularTotal(c.Items)
	c.EmpresaID = s.empresaID

	var n Notificacion
	if c.ID == 0 {
		c.ID = s.siguienteID()
		c.NumeroComprobante = SiguienteNumero(s.comprobantes, c.Tipo)
		if c.Fecha == "" {
			c.Fecha = s.ahora().Format("2006-01-02")
		}
		s.comprobantes = reducir(s.comprobantes, agregarComprobante{c})
		n = Notificacion{
			Titulo:    "Comprobante creado",
			Mensaje:   fmt.Sprintf("%s %s creada con éxito", c.Tipo, c.NumeroComprobante),
			Severidad: SeveridadSuccess,
		}
	} else {
		for _, existente := range s.comprobantes {
			if existente.ID == c.ID {
				c.NumeroComprobante = existente.NumeroComprobante
				break
			}
		}
		s.comprobantes = reducir(s.comprobantes, actualizarComprobante{c})
		n = Notificacion{
			Titulo:    "Comprobante actualizado",
			Mensaje:   "El comprobante fue actualizado con éxito",
			Severidad: SeveridadInfo,
		}
	}

	// Best-effort durability: the store logs and swallows its own failures,
	// the in-memory collection stays authoritative either way.
	s.store.Guardar(ctx, s.empresaID, s.comprobantes)

	s.cerrarFormLocked()
	s.notificador.Notificar(n)
	return &c, nil
}

// Eliminar asks the confirmador before touching anything. While the answer
// is pending the comprobante is still part of the collection; a declined or
// failed confirmation leaves every bit of state untouched.
func (s *comprobanteService) Eliminar(ctx context.Context, id int64) bool {
	confirmado, err := s.confirmador.Confirmar(ctx, Confirmacion{
		Titulo:         "¿Estás seguro?",
		Texto:          "No podrás revertir esto",
		BotonConfirmar: "Sí, eliminar",
		BotonCancelar:  "Cancelar",
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("confirmación de eliminación fallida")
		return false
	}
	if !confirmado {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.comprobantes = reducir(s.comprobantes, eliminarComprobante{id})
	s.store.Guardar(ctx, s.empresaID, s.comprobantes)
	s.notificador.Notificar(Notificacion{
		Titulo:    "Eliminado",
		Mensaje:   "El comprobante fue eliminado",
		Severidad: SeveridadSuccess,
	})
	return true
}

// ── editing form ─────────────────────────────────────────────────────────────

func (s *comprobanteService) AbrirForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seleccionado = s.borradorInicial()
	s.formVisible = true
}

func (s *comprobanteService) CerrarForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cerrarFormLocked()
}

// SeleccionarForm loads an existing comprobante verbatim into the draft,
// items included, regardless of what the form was showing before.
func (s *comprobanteService) SeleccionarForm(c model.Comprobante) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seleccionado = c
	s.formVisible = true
}

func (s *comprobanteService) AgregarProducto(p model.Producto) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seleccionado.Items = AgregarProducto(s.seleccionado.Items, p)
	s.seleccionado.Total = CalcularTotal(s.seleccionado.Items)
}

func (s *comprobanteService) ActualizarCantidad(productoID int64, cantidad string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seleccionado.Items = ActualizarCantidad(s.seleccionado.Items, productoID, cantidad)
	s.seleccionado.Total = CalcularTotal(s.seleccionado.Items)
}

func (s *comprobanteService) EliminarItem(productoID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seleccionado.Items = EliminarItem(s.seleccionado.Items, productoID)
	s.seleccionado.Total = CalcularTotal(s.seleccionado.Items)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *comprobanteService) borradorInicial() model.Comprobante {
	return model.Comprobante{
		ID:    0,
		Tipo:  model.TipoBoleta,
		Fecha: s.ahora().Format("2006-01-02"),
		Items: []model.ItemComprobante{},
		Total: decimal.Zero,
	}
}

func (s *comprobanteService) cerrarFormLocked() {
	s.formVisible = false
	s.seleccionado = s.borradorInicial()
	s.errores = ErroresValidacion{}
}

// siguienteID derives a unique id from the clock in milliseconds, bumping
// past the last issued id when two creations land on the same millisecond.
func (s *comprobanteService) siguienteID() int64 {
	id := s.ahora().UnixMilli()
	if id <= s.ultimoID {
		id = s.ultimoID + 1
	}
	s.ultimoID = id
	return id
}
