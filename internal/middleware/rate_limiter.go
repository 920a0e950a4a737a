package middleware

import (
	"net/http"
	"sync"
	"time"

	"facturador/internal/apierror"

	"github.com/gin-gonic/gin"
)

// Sliding-window request limiter per client IP. The login passthrough is
// public and forwards credentials verbatim, so it is the one route that
// needs brute-force protection in front of the remote backend.

type ventana struct {
	intentos int
	cierre   time.Time
}

type limitadorIP struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
	limite   int
	duracion time.Duration
}

func nuevoLimitadorIP(limite int, duracion time.Duration) *limitadorIP {
	return &limitadorIP{
		ventanas: make(map[string]*ventana),
		limite:   limite,
		duracion: duracion,
	}
}

// permitir counts one attempt for ip within the current window. Expired
// windows are purged on the way through, so the map never outgrows the set
// of IPs seen during the last window.
func (l *limitadorIP) permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for otro, v := range l.ventanas {
		if now.After(v.cierre) {
			delete(l.ventanas, otro)
		}
	}

	v, ok := l.ventanas[ip]
	if !ok {
		v = &ventana{cierre: now.Add(l.duracion)}
		l.ventanas[ip] = v
	}

	v.intentos++
	return v.intentos <= l.limite
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginRateLimiter(20, time.Minute)
}

func loginRateLimiter(limite int, duracion time.Duration) gin.HandlerFunc {
	l := nuevoLimitadorIP(limite, duracion)
	return func(c *gin.Context) {
		if !l.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}
