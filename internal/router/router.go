package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jidris-spec/patient360-health-dashboard/internal/handler"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
)

// Handler registers its routes on the shared API group, attaching the auth
// middleware where the operation is protected.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	MetricsPrefix  string
	ReleaseMode    bool
}

type Router struct {
	engine   *gin.Engine
	authMW   *middleware.AuthMiddleware
	handlers []Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "patient360"
	}

	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "HTTP request count",
			},
			[]string{"method", "path", "status"},
		),
	}

	prometheus.MustRegister(m.requestDuration, m.requestTotal)
	return m
}

func New(authMW *middleware.AuthMiddleware, cfg Config, handlers ...Handler) *Router {
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		authMW:   authMW,
		handlers: handlers,
		metrics:  initRouterMetrics(cfg.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", handler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	for _, h := range r.handlers {
		h.RegisterRoutes(api, r.authMW)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
