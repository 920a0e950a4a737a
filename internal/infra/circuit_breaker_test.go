package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackendCaido = errors.New("connection refused")

func nuevoBreakerDePrueba() (*CircuitBreaker, *time.Time) {
	cb := NewCircuitBreaker(3, 2, time.Minute)
	reloj := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cb.ahora = func() time.Time { return reloj }
	return cb, &reloj
}

func fallar(cb *CircuitBreaker) error {
	return cb.Ejecutar(func() error { return errBackendCaido })
}

func acertar(cb *CircuitBreaker) error {
	return cb.Ejecutar(func() error { return nil })
}

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb, _ := nuevoBreakerDePrueba()

	require.ErrorIs(t, fallar(cb), errBackendCaido)
	require.ErrorIs(t, fallar(cb), errBackendCaido)
	assert.Equal(t, CircuitoCerrado, cb.Estado())

	require.ErrorIs(t, fallar(cb), errBackendCaido)
	assert.Equal(t, CircuitoAbierto, cb.Estado())

	// fast-fail: fn never runs while abierto
	ejecutado := false
	err := cb.Ejecutar(func() error { ejecutado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitoAbierto)
	assert.False(t, ejecutado)
}

func TestCircuitBreaker_UnExitoReiniciaLaCuenta(t *testing.T) {
	cb, _ := nuevoBreakerDePrueba()

	require.Error(t, fallar(cb))
	require.Error(t, fallar(cb))
	require.NoError(t, acertar(cb))
	require.Error(t, fallar(cb))
	require.Error(t, fallar(cb))

	assert.Equal(t, CircuitoCerrado, cb.Estado(), "solo fallos consecutivos abren el circuito")
}

func TestCircuitBreaker_SeRecuperaTrasLaEspera(t *testing.T) {
	cb, reloj := nuevoBreakerDePrueba()

	for i := 0; i < 3; i++ {
		require.Error(t, fallar(cb))
	}
	require.Equal(t, CircuitoAbierto, cb.Estado())

	*reloj = reloj.Add(2 * time.Minute)
	assert.Equal(t, CircuitoSemiabierto, cb.Estado())

	// two probe successes close it again
	require.NoError(t, acertar(cb))
	assert.Equal(t, CircuitoSemiabierto, cb.Estado())
	require.NoError(t, acertar(cb))
	assert.Equal(t, CircuitoCerrado, cb.Estado())
}

func TestCircuitBreaker_SondaFallidaVuelveAAbrir(t *testing.T) {
	cb, reloj := nuevoBreakerDePrueba()

	for i := 0; i < 3; i++ {
		require.Error(t, fallar(cb))
	}
	*reloj = reloj.Add(2 * time.Minute)
	require.Equal(t, CircuitoSemiabierto, cb.Estado())

	require.ErrorIs(t, fallar(cb), errBackendCaido)
	assert.Equal(t, CircuitoAbierto, cb.Estado())
	assert.ErrorIs(t, acertar(cb), ErrCircuitoAbierto)
}

func TestEstadoCircuito_String(t *testing.T) {
	assert.Equal(t, "cerrado", CircuitoCerrado.String())
	assert.Equal(t, "abierto", CircuitoAbierto.String())
	assert.Equal(t, "semiabierto", CircuitoSemiabierto.String())
}
