package router

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/escolas-server/internal/api/http/handler"
	"github.com/dtroode/escolas-server/internal/api/http/middleware"
	"github.com/dtroode/escolas-server/internal/logger"
)

// Route table errors.
var (
	ErrInvalidName    = errors.New("invalid route name")
	ErrInvalidMethod  = errors.New("invalid route method")
	ErrNilHandler     = errors.New("route handler is nil")
	ErrDuplicateRoute = errors.New("duplicate route")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Descriptor is one entry of the route table.
type Descriptor struct {
	Method  string
	Path    string
	Handler handler.Func
}

func (d Descriptor) String() string {
	return d.Method + " " + d.Path
}

// Options configures the engine built by Register.
type Options struct {
	Development bool
	// CORSOrigins lists allowed origins. Empty or "*" allows any origin.
	CORSOrigins []string
	// BodyLimit bounds request bodies in bytes, 0 disables the limit.
	BodyLimit int64
	// Registry receives the HTTP metrics and is exposed at /metrics.
	// A private registry is used when nil.
	Registry *prometheus.Registry
}

// Router builds the HTTP engine from a list of controllers.
type Router struct {
	controllers []handler.Controller
	system      *handler.System
	logger      *logger.Logger
	opts        Options
}

// New creates new Router instance. Controllers are registered in order.
func New(
	controllers []handler.Controller,
	system *handler.System,
	logger *logger.Logger,
	opts Options,
) *Router {
	return &Router{
		controllers: controllers,
		system:      system,
		logger:      logger,
		opts:        opts,
	}
}

// Table returns the validated route table: one descriptor per controller
// route, served at /{controller}/{route}.
func (r *Router) Table() ([]Descriptor, error) {
	var table []Descriptor
	seen := make(map[string]bool)

	for _, ctrl := range r.controllers {
		name := ctrl.Name()
		if !validName.MatchString(name) {
			return nil, fmt.Errorf("%w: controller %q", ErrInvalidName, name)
		}

		for _, route := range ctrl.Routes() {
			if !validName.MatchString(route.Name) {
				return nil, fmt.Errorf("%w: %q in controller %q", ErrInvalidName, route.Name, name)
			}
			if !allowedMethods[route.Method] {
				return nil, fmt.Errorf("%w: %q for /%s/%s", ErrInvalidMethod, route.Method, name, route.Name)
			}
			if route.Handler == nil {
				return nil, fmt.Errorf("%w: /%s/%s", ErrNilHandler, name, route.Name)
			}

			d := Descriptor{
				Method:  route.Method,
				Path:    "/" + name + "/" + route.Name,
				Handler: route.Handler,
			}
			if seen[d.String()] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, d)
			}
			seen[d.String()] = true
			table = append(table, d)
		}
	}

	return table, nil
}

// Register builds the gin engine with the middleware chain, the controller
// routes and the system endpoints.
func (r *Router) Register() (*gin.Engine, error) {
	table, err := r.Table()
	if err != nil {
		return nil, err
	}

	registry := r.opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	corsConfig := r.corsConfig()
	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}

	engine := gin.New()
	if r.opts.BodyLimit > 0 {
		engine.MaxMultipartMemory = r.opts.BodyLimit
	}

	engine.Use(
		middleware.RequestID,
		ginzap.Ginzap(r.logger.Zap(), time.RFC3339, true),
		middleware.NewRecovery(r.logger, r.opts.Development).Handle,
		cors.New(corsConfig),
		middleware.NewBodyLimit(r.opts.BodyLimit).Handle,
		metrics.Handle,
	)

	routes := make([]string, 0, len(table))
	for _, d := range table {
		engine.Handle(d.Method, d.Path, r.wrap(d))
		routes = append(routes, d.String())
		r.logger.Debug("Route registered", "method", d.Method, "path", d.Path)
	}

	engine.GET("/health", r.system.Health)
	engine.GET("/api", r.system.Descriptor(routes))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	engine.NoRoute(r.system.NotFound)

	return engine, nil
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if allowAll(r.opts.CORSOrigins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = r.opts.CORSOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}

func allowAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// wrap maps the error returned by a handler to a response.
func (r *Router) wrap(d Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := d.Handler(c)
		if err == nil {
			return
		}
		_ = c.Error(err)

		log := r.logger.With(
			"method", d.Method,
			"path", d.Path,
			"request_id", middleware.GetRequestID(c))

		if c.Writer.Written() {
			log.Error("Handler failed after writing response", "error", err)
			c.Abort()
			return
		}

		var herr *handler.Error
		if errors.As(err, &herr) {
			if herr.Status >= http.StatusInternalServerError {
				log.Error(herr.Message, "error", herr.Err)
			}
			c.AbortWithStatusJSON(herr.Status, gin.H{"error": herr.Message})
			return
		}

		log.Error("Unhandled handler error", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.InternalServerError(err, r.opts.Development, nil))
	}
}
