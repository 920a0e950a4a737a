package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facturador/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretoPrueba = "secreto-de-prueba"

func routerProtegido(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", middleware.JWTAuth(secret), func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "isAdmin": claims.Admin})
	})
	return r
}

func firmarToken(t *testing.T, secret string, expira time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.SessionClaims{
		Username: "operador",
		Admin:    true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operador",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expira)),
		},
	})
	firmado, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return firmado
}

func pedir(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_TokenValido(t *testing.T) {
	r := routerProtegido(secretoPrueba)

	w := pedir(r, "Bearer "+firmarToken(t, secretoPrueba, time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operador")
}

func TestJWTAuth_SinHeader(t *testing.T) {
	w := pedir(routerProtegido(secretoPrueba), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Autenticacion requerida")
}

func TestJWTAuth_SinPrefijoBearer(t *testing.T) {
	w := pedir(routerProtegido(secretoPrueba), firmarToken(t, secretoPrueba, time.Hour))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_FirmaIncorrecta(t *testing.T) {
	w := pedir(routerProtegido(secretoPrueba), "Bearer "+firmarToken(t, "otro-secreto", time.Hour))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalido o expirado")
}

func TestJWTAuth_TokenExpirado(t *testing.T) {
	w := pedir(routerProtegido(secretoPrueba), "Bearer "+firmarToken(t, secretoPrueba, -time.Minute))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
