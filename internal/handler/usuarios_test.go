package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"facturador/internal/client"
	"facturador/internal/handler"
	"facturador/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routerDeUsuarios(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewUsuariosHandler(client.NewBackend(backendURL))
	r := gin.New()
	r.GET("/v1/usuarios", h.Listar)
	return r
}

func TestUsuarios_ListarConLaSesionDelLlamador(t *testing.T) {
	var recibido string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		recibido = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Usuario{
			{ID: 1, Username: "operador", Email: "operador@pymes.pe", Admin: true},
		})
	}))
	defer srv.Close()

	r := routerDeUsuarios(srv.URL)
	req := httptest.NewRequest(http.MethodGet, "/v1/usuarios", nil)
	req.Header.Set("Authorization", "Bearer un-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer un-token", recibido)

	var usuarios []model.Usuario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usuarios))
	require.Len(t, usuarios, 1)
	assert.Equal(t, "operador", usuarios[0].Username)
	assert.Empty(t, usuarios[0].Password, "la contraseña nunca viaja al navegador")
}

func TestUsuarios_SesionExpirada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	r := routerDeUsuarios(srv.URL)
	req := httptest.NewRequest(http.MethodGet, "/v1/usuarios", nil)
	req.Header.Set("Authorization", "Bearer vencido")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Sesion expirada")
}
