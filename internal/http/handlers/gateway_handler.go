// Gateway HTTP handlers.
//
// Every forwarding endpoint follows the same path:
//
//	bind + validate  ->  one catalog.Gateway call  ->  envelope.Map  ->  JSON
//
// Requests that fail binding or carry an empty name are rejected with an
// ErrorResponse before Glue is contacted. Everything that reaches Glue is
// answered with an envelope, logged when it is not a Success, counted in
// Prometheus and written to the audit trail.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/glue-gateway/internal/catalog"
	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
	"github.com/tbourn/glue-gateway/internal/http/middleware"
	"github.com/tbourn/glue-gateway/internal/services"
)

//
// Collaborator contracts (context-aware)
//

// Gateway issues one Glue call per method and classifies the result.
// *catalog.Gateway is the production implementation.
type Gateway interface {
	CreateCrawler(ctx context.Context, in catalog.CrawlerInput) envelope.Outcome
	UpdateCrawler(ctx context.Context, in catalog.CrawlerInput) envelope.Outcome
	GetCrawler(ctx context.Context, name string) envelope.Outcome
	GetCrawlers(ctx context.Context) envelope.Outcome
	ListCrawlers(ctx context.Context) envelope.Outcome
	StartCrawler(ctx context.Context, name string) envelope.Outcome
	StopCrawler(ctx context.Context, name string) envelope.Outcome

	CreateConnection(ctx context.Context, c domain.Connection) envelope.Outcome
	UpdateConnection(ctx context.Context, c domain.Connection) envelope.Outcome
	GetConnection(ctx context.Context, name string) envelope.Outcome
	GetConnections(ctx context.Context) envelope.Outcome
	DeleteConnection(ctx context.Context, name string) envelope.Outcome
}

// AuditLog records forwarded calls and serves them back to operators.
type AuditLog interface {
	// Record persists one forwarded call. Failures never change the envelope.
	Record(ctx context.Context, call services.Call) error
	// ListPage returns a page of recorded calls and the total count.
	ListPage(ctx context.Context, op string, page, pageSize int) ([]domain.CallRecord, int64, error)
	// Stats returns the matching count and newest record time.
	Stats(ctx context.Context, op string) (int64, *time.Time, error)
}

var _ Gateway = (*catalog.Gateway)(nil)

//
// Handler wiring
//

// Handlers groups the crawler, connection and audit endpoints.
type Handlers struct {
	gw           Gateway
	audit        AuditLog
	mirrorStatus bool
}

// New constructs Handlers. audit may be nil. When mirrorStatus is set the
// outer HTTP status equals the envelope status; otherwise it is always 200.
func New(gw Gateway, audit AuditLog, mirrorStatus bool) *Handlers {
	return &Handlers{gw: gw, audit: audit, mirrorStatus: mirrorStatus}
}

//
// Helpers
//

// normalizeName trims s and converts it to Unicode NFC so that visually
// identical names reach Glue byte-identical.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// pathName reads and normalizes the :name parameter. On failure it writes a
// 400 and returns false.
func pathName(c *gin.Context, kind string) (string, bool) {
	name := normalizeName(c.Param("name"))
	if name == "" {
		fail(c, http.StatusBadRequest, ErrCodeInvalidName, kind+" name is required")
		return "", false
	}
	return name, true
}

// bindBody decodes and validates the JSON body into dst. On failure it writes
// a 400 and returns false.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fail(c, http.StatusBadRequest, ErrCodeValidation, verrs.Error())
			return false
		}
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// forward runs call, maps its outcome and writes the envelope.
func (h *Handlers) forward(c *gin.Context, op envelope.Operation, resource string, call func(context.Context) envelope.Outcome) {
	ctx := c.Request.Context()
	start := time.Now()
	o := call(ctx)
	took := time.Since(start)
	env := envelope.Map(op, o)

	lg := middleware.LoggerFrom(c)
	if env.Variant != envelope.VariantSuccess {
		ev := lg.Warn()
		if o.Kind == envelope.KindUnclassified {
			ev = lg.Error()
		}
		ev = ev.Str("operation", string(op)).
			Str("resource", resource).
			Str("outcome", o.Kind.String()).
			Int("status", env.Status).
			Dur("took", took)
		if o.Code != "" {
			ev = ev.Str("error_code", o.Code)
		}
		ev.Err(o.Err).Msg("glue call not successful")
	}
	middleware.ObserveGlueCall(string(op), string(env.Variant), took)

	if h.audit != nil {
		// The audit row outlives a disconnected client.
		err := h.audit.Record(context.WithoutCancel(ctx), services.Call{
			RequestID: c.Writer.Header().Get("X-Request-ID"),
			Operation: op,
			Resource:  resource,
			Outcome:   o,
			Envelope:  env,
		})
		if err != nil {
			lg.Error().Err(err).Str("operation", string(op)).Msg("audit record failed")
		}
	}

	writeEnvelope(c, env, h.mirrorStatus)
}
