package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// System serves the endpoints that do not belong to a controller.
type System struct {
	environment       string
	version           string
	supabaseConnected bool
	now               func() time.Time
}

func NewSystem(environment, version string, supabaseConnected bool) *System {
	return &System{
		environment:       environment,
		version:           version,
		supabaseConnected: supabaseConnected,
		now:               time.Now,
	}
}

// Health reports liveness and whether the Supabase project is configured.
func (s *System) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "OK",
		"timestamp":         s.now().UTC().Format(time.RFC3339),
		"environment":       s.environment,
		"supabaseConnected": s.supabaseConnected,
	})
}

// Descriptor returns a handler describing the service and its routes.
func (s *System) Descriptor(routes []string) gin.HandlerFunc {
	body := gin.H{
		"message": "Welcome to the API",
		"version": s.version,
		"endpoints": gin.H{
			"health": "/health",
			"api":    "/api",
		},
		"routes": routes,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}

// NotFound answers requests that match no route.
func (s *System) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "Route not found",
		"path":   c.Request.RequestURI,
		"method": c.Request.Method,
	})
}
