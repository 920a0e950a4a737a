package service

import (
	"testing"

	"facturador/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estadoDePrueba() []model.Comprobante {
	return []model.Comprobante{
		{ID: 1, Tipo: model.TipoBoleta, NumeroComprobante: "B001-00001", ClienteNombre: "Ana"},
		{ID: 2, Tipo: model.TipoBoleta, NumeroComprobante: "B001-00002", ClienteNombre: "Luis"},
	}
}

func TestReducir_Cargar(t *testing.T) {
	cargados := estadoDePrueba()
	estado := reducir([]model.Comprobante{{ID: 99}}, cargarComprobantes{cargados})

	assert.Equal(t, cargados, estado, "cargar reemplaza el estado anterior completo")

	// fresh slice: mutating the source must not leak into the state
	cargados[0].ClienteNombre = "Otra"
	assert.Equal(t, "Ana", estado[0].ClienteNombre)
}

func TestReducir_Agregar(t *testing.T) {
	antes := estadoDePrueba()
	estado := reducir(antes, agregarComprobante{model.Comprobante{ID: 3, ClienteNombre: "Rosa"}})

	require.Len(t, estado, 3)
	assert.Equal(t, int64(3), estado[2].ID, "el nuevo va al final")
	assert.Len(t, antes, 2, "el estado de entrada no se muta")
}

func TestReducir_Actualizar(t *testing.T) {
	antes := estadoDePrueba()
	editado := antes[0]
	editado.ClienteNombre = "Ana María"

	estado := reducir(antes, actualizarComprobante{editado})

	require.Len(t, estado, 2)
	assert.Equal(t, "Ana María", estado[0].ClienteNombre)
	assert.Equal(t, "Luis", estado[1].ClienteNombre, "los demas quedan en su posicion")
	assert.Equal(t, "Ana", antes[0].ClienteNombre)
}

func TestReducir_ActualizarIDAusenteNoCambiaNada(t *testing.T) {
	antes := estadoDePrueba()
	estado := reducir(antes, actualizarComprobante{model.Comprobante{ID: 99, ClienteNombre: "Nadie"}})

	assert.Equal(t, antes, estado)
}

func TestReducir_Eliminar(t *testing.T) {
	antes := estadoDePrueba()

	estado := reducir(antes, eliminarComprobante{id: 1})
	require.Len(t, estado, 1)
	assert.Equal(t, int64(2), estado[0].ID)

	assert.Equal(t, antes, reducir(antes, eliminarComprobante{id: 99}), "id ausente es no-op")
	assert.Len(t, antes, 2)
}
