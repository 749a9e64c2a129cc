// Package httpapi wires the HTTP transport (Gin) to the Glue gateway, the
// audit trail, middleware, and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging/redaction, panic
// recovery, metrics, compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/glue-gateway/internal/config"
	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/http/handlers"
	"github.com/tbourn/glue-gateway/internal/http/middleware"
	"github.com/tbourn/glue-gateway/internal/repo"
	"github.com/tbourn/glue-gateway/internal/services"
)

// maxBodyBytes caps request bodies; crawler and connection records are tiny.
const maxBodyBytes = 1 << 20

// callRepoShim adapts the repository free functions to the services.CallRepo
// interface expected by the AuditService.
type callRepoShim struct{}

// InsertCall proxies repo.InsertCall.
func (callRepoShim) InsertCall(ctx context.Context, db *gorm.DB, rec *domain.CallRecord) error {
	return repo.InsertCall(ctx, db, rec)
}

// CountCalls proxies repo.CountCalls.
func (callRepoShim) CountCalls(ctx context.Context, db *gorm.DB, op string) (int64, error) {
	return repo.CountCalls(ctx, db, op)
}

// ListCallsPage proxies repo.ListCallsPage.
func (callRepoShim) ListCallsPage(ctx context.Context, db *gorm.DB, op string, offset, limit int) ([]domain.CallRecord, error) {
	return repo.ListCallsPage(ctx, db, op, offset, limit)
}

// CallStats proxies repo.CallStats.
func (callRepoShim) CallStats(ctx context.Context, db *gorm.DB, op string) (int64, *time.Time, error) {
	return repo.CallStats(ctx, db, op)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. db may be nil, in which case the audit trail is disabled.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with secret scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP, read and write buckets)
//  8. CORS and Security headers
//  9. Gzip
func RegisterRoutes(r *gin.Engine, gw handlers.Gateway, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIPAndAccess()).
		Exempt("/health", "/metrics")
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
		DocsPrefix:   "/docs/",
	}))

	// 9) Compress responses; GetCrawlers returns full crawler records.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: audit ← repo/db
	var audit handlers.AuditLog
	if db != nil && cfg.Audit.Enabled {
		audit = services.NewAuditService(db, callRepoShim{})
	}
	h := handlers.New(gw, audit, cfg.MirrorStatus)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		// Crawlers
		api.POST("/crawlers/s3", h.CreateS3Crawler)
		api.POST("/crawlers/jdbc", h.CreateJdbcCrawler)
		api.POST("/crawlers/catalog", h.CreateCatalogCrawler)
		api.POST("/crawlers/delta", h.CreateDeltaCrawler)
		api.PUT("/crawlers/s3", h.UpdateS3Crawler)
		api.PUT("/crawlers/jdbc", h.UpdateJdbcCrawler)
		api.PUT("/crawlers/catalog", h.UpdateCatalogCrawler)
		api.PUT("/crawlers/delta", h.UpdateDeltaCrawler)
		api.GET("/crawlers", h.GetCrawlers)
		api.GET("/crawlers/names", h.ListCrawlers)
		api.GET("/crawlers/:name", h.GetCrawler)
		api.POST("/crawlers/:name", h.GetCrawler)
		api.POST("/crawlers/:name/start", h.StartCrawler)
		api.POST("/crawlers/:name/stop", h.StopCrawler)

		// Connections
		api.POST("/connections", h.CreateConnection)
		api.PUT("/connections", h.UpdateConnection)
		api.GET("/connections", h.GetConnections)
		api.GET("/connections/:name", h.GetConnection)
		api.POST("/connections/:name", h.GetConnection)
		api.DELETE("/connections/:name", h.DeleteConnection)

		// Audit
		api.GET("/audit/calls", h.ListCalls)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
