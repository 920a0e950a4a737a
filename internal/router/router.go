package router

import (
	"path/filepath"

	"facturador/internal/client"
	"facturador/internal/config"
	"facturador/internal/handler"
	"facturador/internal/middleware"
	"facturador/internal/service"
	"facturador/internal/store"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store, with the remote backend
// client shared by the proxy handlers.
func New(cfg *config.Config, st store.ComprobanteStore, backend *client.Backend) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// One comprobante service per empresa scope, built on demand. The
	// collaborators are fixed here: confirmations resolve from the request,
	// notifications go to the structured log.
	nuevoServicio := func(empresaID int64) service.ComprobanteService {
		return service.NewComprobanteService(empresaID, st, service.ConfirmadorContexto{}, service.LogNotificador{})
	}

	authH := handler.NewAuthHandler(backend)
	empresasH := handler.NewEmpresasHandler(backend)
	usuariosH := handler.NewUsuariosHandler(backend)
	productosH := handler.NewProductosHandler(backend)
	comprobantesH := handler.NewComprobantesHandler(nuevoServicio, backend, filepath.Join(cfg.DataDir, "pdfs"))

	// Public
	r.GET("/health", handler.Health(cfg.StoreBackend))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/usuarios", usuariosH.Listar)

		v1.GET("/empresas", empresasH.Listar)
		v1.POST("/empresas", empresasH.Guardar)
		v1.DELETE("/empresas/:empresaId", empresasH.Eliminar)

		empresa := v1.Group("/empresas/:empresaId")
		{
			empresa.GET("/productos", productosH.Listar)
			empresa.POST("/productos", productosH.Guardar)
			empresa.DELETE("/productos/:id", productosH.Eliminar)

			comprobantes := empresa.Group("/comprobantes")
			{
				comprobantes.GET("", comprobantesH.Listar)
				comprobantes.POST("", comprobantesH.Guardar)
				comprobantes.DELETE("/:id", comprobantesH.Eliminar)
				comprobantes.GET("/:id/pdf", comprobantesH.DescargarPDF)
			}

			// The editing form is a singleton per empresa; it gets its own
			// path segment so it cannot collide with the :id routes above.
			form := empresa.Group("/comprobante-form")
			{
				form.GET("", comprobantesH.Form)
				form.POST("", comprobantesH.AbrirForm)
				form.DELETE("", comprobantesH.CerrarForm)
				form.PUT("/:id", comprobantesH.SeleccionarForm)
				form.POST("/items", comprobantesH.AgregarItem)
				form.PATCH("/items/:productoId", comprobantesH.ActualizarCantidad)
				form.DELETE("/items/:productoId", comprobantesH.EliminarItem)
			}
		}
	}

	return r
}
