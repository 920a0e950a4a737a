// Package client talks to the remote pymes backend that owns empresas,
// productos and usuarios. The console only mirrors those resources; it
// never caches them beyond a single request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"facturador/internal/infra"
	"facturador/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSesionExpirada is returned when the backend answers 401 — callers drop
// the session and send the user back to login.
var ErrSesionExpirada = errors.New("sesión expirada")

type Backend struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *infra.CircuitBreaker
}

func NewBackend(baseURL string) *Backend {
	return &Backend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    infra.NewCircuitBreaker(5, 2, 30*time.Second),
	}
}

// ConToken returns a copy of the client bound to one session token, so a
// proxied request runs under its caller's own session. The clone shares the
// circuit breaker: backend health is global, not per session.
func (b *Backend) ConToken(token string) *Backend {
	clone := *b
	clone.token = token
	return &clone
}

// enviar runs one transport round trip through the circuit breaker. Only
// transport failures count against the breaker; HTTP error statuses are the
// backend answering, not the backend being down.
func (b *Backend) enviar(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := b.breaker.Ejecutar(func() error {
		var derr error
		resp, derr = b.httpClient.Do(req)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Username peeks at the token's username claim without verifying the
// signature — the backend is the verifier, the console only displays who is
// logged in. Empty when there is no usable token.
func (b *Backend) Username() string {
	raw := strings.TrimPrefix(b.token, "Bearer ")
	if raw == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}
	if username, ok := claims["username"].(string); ok {
		return username
	}
	sub, _ := claims.GetSubject()
	return sub
}

// ── auth ─────────────────────────────────────────────────────────────────────

type credenciales struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token. The backend sends the
// token in the Authorization response header.
func (b *Backend) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(credenciales{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("backend: marshal login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.enviar(req)
	if err != nil {
		return "", fmt.Errorf("backend: no disponible: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", errors.New("usuario o contraseña incorrectos")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend: login devolvió %d", resp.StatusCode)
	}

	token := resp.Header.Get("Authorization")
	if token == "" {
		return "", errors.New("backend: login sin token")
	}
	return token, nil
}

// ── empresas ─────────────────────────────────────────────────────────────────

func (b *Backend) ListarEmpresas(ctx context.Context) ([]model.Empresa, error) {
	var empresas []model.Empresa
	if err := b.do(ctx, http.MethodGet, "/empresa", nil, &empresas); err != nil {
		return nil, err
	}
	return empresas, nil
}

func (b *Backend) GuardarEmpresa(ctx context.Context, e model.Empresa) (*model.Empresa, error) {
	var guardada model.Empresa
	var err error
	if e.ID == 0 {
		err = b.do(ctx, http.MethodPost, "/empresa", e, &guardada)
	} else {
		err = b.do(ctx, http.MethodPut, fmt.Sprintf("/empresa/%d", e.ID), e, &guardada)
	}
	if err != nil {
		return nil, err
	}
	return &guardada, nil
}

func (b *Backend) EliminarEmpresa(ctx context.Context, id int64) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/empresa/%d", id), nil, nil)
}

// ── productos (scoped per empresa) ───────────────────────────────────────────

func (b *Backend) ListarProductos(ctx context.Context, empresaID int64) ([]model.Producto, error) {
	var productos []model.Producto
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/producto/empresa/%d", empresaID), nil, &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

func (b *Backend) GuardarProducto(ctx context.Context, empresaID int64, p model.Producto) (*model.Producto, error) {
	var guardado model.Producto
	var err error
	if p.ID == 0 {
		err = b.do(ctx, http.MethodPost, fmt.Sprintf("/producto/empresa/%d", empresaID), p, &guardado)
	} else {
		err = b.do(ctx, http.MethodPut, fmt.Sprintf("/producto/%d/empresa/%d", p.ID, empresaID), p, &guardado)
	}
	if err != nil {
		return nil, err
	}
	return &guardado, nil
}

func (b *Backend) EliminarProducto(ctx context.Context, empresaID, id int64) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/producto/%d/empresa/%d", id, empresaID), nil, nil)
}

// ── usuarios ─────────────────────────────────────────────────────────────────

func (b *Backend) ListarUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	if err := b.do(ctx, http.MethodGet, "/users", nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// ── transport ────────────────────────────────────────────────────────────────

func (b *Backend) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", b.token)
	}

	resp, err := b.enviar(req)
	if err != nil {
		return fmt.Errorf("backend: no disponible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSesionExpirada
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("backend: %s %s devolvió %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
