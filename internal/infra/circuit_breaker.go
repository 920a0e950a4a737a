package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker in front of the remote pymes backend. When the backend
// stops answering, proxied requests fail fast instead of stacking up client
// timeouts; after a cool-down a probe request decides whether to resume.

// EstadoCircuito is the breaker state machine position.
type EstadoCircuito int

const (
	CircuitoCerrado     EstadoCircuito = iota // normal operation
	CircuitoAbierto                           // fast-fail everything
	CircuitoSemiabierto                       // probing recovery
)

func (e EstadoCircuito) String() string {
	switch e {
	case CircuitoCerrado:
		return "cerrado"
	case CircuitoAbierto:
		return "abierto"
	case CircuitoSemiabierto:
		return "semiabierto"
	default:
		return "desconocido"
	}
}

// ErrCircuitoAbierto is the fast-fail result while the breaker is open.
var ErrCircuitoAbierto = errors.New("backend en pausa por fallos consecutivos")

// CircuitBreaker trips open after umbralFallos consecutive failures and
// closes again after umbralExitos consecutive probe successes.
type CircuitBreaker struct {
	umbralFallos int
	umbralExitos int
	espera       time.Duration
	ahora        func() time.Time

	mu          sync.Mutex
	estado      EstadoCircuito
	fallos      int
	exitos      int
	ultimoFallo time.Time
}

func NewCircuitBreaker(umbralFallos, umbralExitos int, espera time.Duration) *CircuitBreaker {
	if umbralFallos <= 0 {
		umbralFallos = 5
	}
	if umbralExitos <= 0 {
		umbralExitos = 2
	}
	if espera <= 0 {
		espera = 30 * time.Second
	}
	return &CircuitBreaker{
		umbralFallos: umbralFallos,
		umbralExitos: umbralExitos,
		espera:       espera,
		ahora:        time.Now,
	}
}

// Estado reports the current position, moving abierto → semiabierto once the
// cool-down has elapsed.
func (cb *CircuitBreaker) Estado() EstadoCircuito {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.estadoLocked()
}

func (cb *CircuitBreaker) estadoLocked() EstadoCircuito {
	if cb.estado == CircuitoAbierto && cb.ahora().Sub(cb.ultimoFallo) >= cb.espera {
		cb.estado = CircuitoSemiabierto
		cb.exitos = 0
	}
	return cb.estado
}

// Ejecutar runs fn unless the breaker is open. Only fn's own error is
// counted as a failure; ErrCircuitoAbierto never feeds back into the count.
func (cb *CircuitBreaker) Ejecutar(fn func() error) error {
	cb.mu.Lock()
	if cb.estadoLocked() == CircuitoAbierto {
		cb.mu.Unlock()
		return ErrCircuitoAbierto
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFallo()
		return err
	}
	cb.registrarExito()
	return nil
}

func (cb *CircuitBreaker) registrarFallo() {
	cb.fallos++
	cb.ultimoFallo = cb.ahora()

	switch cb.estado {
	case CircuitoCerrado:
		if cb.fallos >= cb.umbralFallos {
			cb.estado = CircuitoAbierto
		}
	case CircuitoSemiabierto:
		// failed probe: back to fast-fail for another cool-down
		cb.estado = CircuitoAbierto
		cb.fallos = 0
	}
}

func (cb *CircuitBreaker) registrarExito() {
	switch cb.estado {
	case CircuitoCerrado:
		cb.fallos = 0
	case CircuitoSemiabierto:
		cb.exitos++
		if cb.exitos >= cb.umbralExitos {
			cb.estado = CircuitoCerrado
			cb.fallos = 0
			cb.exitos = 0
		}
	}
}
