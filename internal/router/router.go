package router

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AuthHandler splits its routes across the public and protected groups.
type AuthHandler interface {
	RegisterPublicRoutes(*gin.RouterGroup)
	RegisterProtectedRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	MetricsPrefix string
	TemplateGlob  string
	ReleaseMode   bool
}

type Router struct {
	engine         *gin.Engine
	auth           *middleware.AuthMiddleware
	authH          AuthHandler
	dashboardH     Handler
	patientH       Handler
	appointmentH   Handler
	medicalRecordH Handler
	rxH            Handler
	labResultH     Handler
	billingH       Handler
	healthH        Handler
	registry       *prometheus.Registry
	metrics        *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH AuthHandler,
	dashboardH Handler,
	patientH Handler,
	appointmentH Handler,
	medicalRecordH Handler,
	rxH Handler,
	labResultH Handler,
	billingH Handler,
	healthH Handler,
	config Config,
) *Router {
	if config.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.SetFuncMap(TemplateFuncs())
	if config.TemplateGlob != "" {
		engine.LoadHTMLGlob(config.TemplateGlob)
	}

	// Each router carries its own registry so building two routers in one
	// process never trips duplicate metric registration.
	registry := prometheus.NewRegistry()

	r := &Router{
		engine:         engine,
		auth:           auth,
		authH:          authH,
		dashboardH:     dashboardH,
		patientH:       patientH,
		appointmentH:   appointmentH,
		medicalRecordH: medicalRecordH,
		rxH:            rxH,
		labResultH:     labResultH,
		billingH:       billingH,
		healthH:        healthH,
		registry:       registry,
		metrics:        initRouterMetrics(registry, config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	root := r.engine.Group("")
	r.healthH.RegisterRoutes(root)

	// Login and register bounce already-authenticated doctors to the
	// dashboard.
	public := r.engine.Group("", r.auth.RedirectIfAuthenticated())
	r.authH.RegisterPublicRoutes(public)

	// Everything else is behind the auth guard: no valid session, no page.
	protected := r.engine.Group("", r.auth.RequireAuth())
	r.authH.RegisterProtectedRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
	r.patientH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
	r.medicalRecordH.RegisterRoutes(protected)
	r.rxH.RegisterRoutes(protected)
	r.labResultH.RegisterRoutes(protected)
	r.billingH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// TemplateFuncs is the FuncMap the page templates are compiled with.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format(model.DateOnly)
		},
		"dateptr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(model.DateOnly)
		},
		"money": func(amount float64) string {
			return fmt.Sprintf("%.2f", amount)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefid": func(id *int64) int64 {
			if id == nil {
				return 0
			}
			return *id
		},
	}
}

func initRouterMetrics(registry *prometheus.Registry, prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "clinic"
	}
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
	registry.MustRegister(m.requestDuration, m.requestTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
