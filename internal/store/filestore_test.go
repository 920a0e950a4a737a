package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"facturador/internal/model"
	"facturador/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comprobantesDeMuestra(empresaID int64) []model.Comprobante {
	return []model.Comprobante{
		{
			ID:                1755000000000,
			Tipo:              model.TipoBoleta,
			NumeroComprobante: "B001-00001",
			Fecha:             "2026-08-15",
			ClienteNombre:     "Ana",
			ClienteDocumento:  "45781236",
			Items: []model.ItemComprobante{{
				ProductoID:    1,
				Nombre:        "Pan",
				ValorUnitario: decimal.RequireFromString("2.5"),
				Cantidad:      2,
				Subtotal:      decimal.RequireFromString("5"),
			}},
			Total:     decimal.RequireFromString("5"),
			EmpresaID: empresaID,
		},
		{
			ID:                1755000000001,
			Tipo:              model.TipoFactura,
			NumeroComprobante: "F001-00001",
			Fecha:             "2026-08-16",
			ClienteNombre:     "Acme SAC",
			ClienteDocumento:  "20481234567",
			Items: []model.ItemComprobante{{
				ProductoID:    2,
				Nombre:        "Leche",
				ValorUnitario: decimal.RequireFromString("4.2"),
				Cantidad:      1,
				Subtotal:      decimal.RequireFromString("4.2"),
			}},
			Total:     decimal.RequireFromString("4.2"),
			EmpresaID: empresaID,
		},
	}
}

func TestFileStore_GuardarYCargar(t *testing.T) {
	st := store.NewFileStore(t.TempDir())
	ctx := context.Background()
	originales := comprobantesDeMuestra(7)

	st.Guardar(ctx, 7, originales)

	assert.Equal(t, originales, st.Cargar(ctx, 7))
}

func TestFileStore_AislamientoPorEmpresa(t *testing.T) {
	st := store.NewFileStore(t.TempDir())
	ctx := context.Background()

	st.Guardar(ctx, 7, comprobantesDeMuestra(7))
	st.Guardar(ctx, 8, comprobantesDeMuestra(8)[:1])

	assert.Len(t, st.Cargar(ctx, 7), 2)
	assert.Len(t, st.Cargar(ctx, 8), 1)
	assert.Empty(t, st.Cargar(ctx, 9))
}

func TestFileStore_SegundaEscrituraReemplaza(t *testing.T) {
	st := store.NewFileStore(t.TempDir())
	ctx := context.Background()
	originales := comprobantesDeMuestra(7)

	st.Guardar(ctx, 7, originales)
	st.Guardar(ctx, 7, originales[:1])

	assert.Equal(t, originales[:1], st.Cargar(ctx, 7))
}

func TestFileStore_ListaVaciaSobrevivaElViaje(t *testing.T) {
	st := store.NewFileStore(t.TempDir())
	ctx := context.Background()

	st.Guardar(ctx, 7, []model.Comprobante{})

	cargados := st.Cargar(ctx, 7)
	assert.NotNil(t, cargados)
	assert.Empty(t, cargados)
}

func TestFileStore_ClaveAusenteDevuelveVacio(t *testing.T) {
	st := store.NewFileStore(t.TempDir())

	cargados := st.Cargar(context.Background(), 42)
	assert.NotNil(t, cargados)
	assert.Empty(t, cargados)
}

func TestFileStore_ContenidoCorruptoSeDescarta(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, store.Clave(7)+".json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o644))

	st := store.NewFileStore(dir)
	cargados := st.Cargar(context.Background(), 7)

	assert.NotNil(t, cargados)
	assert.Empty(t, cargados)
}

func TestFileStore_NullSeNormalizaAVacio(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, store.Clave(7)+".json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	st := store.NewFileStore(dir)
	assert.NotNil(t, st.Cargar(context.Background(), 7))
}

func TestFileStore_FalloDeEscrituraNoEntraEnPanico(t *testing.T) {
	// dir points at a regular file, so MkdirAll fails on every write
	bloqueado := filepath.Join(t.TempDir(), "archivo")
	require.NoError(t, os.WriteFile(bloqueado, []byte("x"), 0o644))

	st := store.NewFileStore(bloqueado)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		st.Guardar(ctx, 7, comprobantesDeMuestra(7))
	})
	assert.Empty(t, st.Cargar(ctx, 7))
}

func TestClave(t *testing.T) {
	assert.Equal(t, "comprobantes_empresa_7", store.Clave(7))
}
