// Package catalog is the only place that talks to AWS Glue.
//
// Gateway issues exactly one Glue call per operation and classifies the result
// into an envelope.Outcome:
//
//   - a completed call becomes a transport outcome carrying the raw HTTP status
//     and the operation's payload (e.g. the ConnectionList of GetConnections);
//   - an error implementing smithy.APIError becomes a classified outcome
//     carrying its error code, HTTP status and {"Code","Message"} detail;
//   - anything else (network, cancellation, signing) is unclassified.
//
// Gateway never retries. The Glue client it wraps is built once at startup and
// shared read-only by all requests.
package catalog

import (
	"context"
	"errors"
	"net/http"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/glue-gateway/internal/envelope"
)

// API is the subset of *glue.Client used by Gateway.
type API interface {
	CreateCrawler(ctx context.Context, in *glue.CreateCrawlerInput, optFns ...func(*glue.Options)) (*glue.CreateCrawlerOutput, error)
	UpdateCrawler(ctx context.Context, in *glue.UpdateCrawlerInput, optFns ...func(*glue.Options)) (*glue.UpdateCrawlerOutput, error)
	GetCrawler(ctx context.Context, in *glue.GetCrawlerInput, optFns ...func(*glue.Options)) (*glue.GetCrawlerOutput, error)
	GetCrawlers(ctx context.Context, in *glue.GetCrawlersInput, optFns ...func(*glue.Options)) (*glue.GetCrawlersOutput, error)
	ListCrawlers(ctx context.Context, in *glue.ListCrawlersInput, optFns ...func(*glue.Options)) (*glue.ListCrawlersOutput, error)
	StartCrawler(ctx context.Context, in *glue.StartCrawlerInput, optFns ...func(*glue.Options)) (*glue.StartCrawlerOutput, error)
	StopCrawler(ctx context.Context, in *glue.StopCrawlerInput, optFns ...func(*glue.Options)) (*glue.StopCrawlerOutput, error)

	CreateConnection(ctx context.Context, in *glue.CreateConnectionInput, optFns ...func(*glue.Options)) (*glue.CreateConnectionOutput, error)
	UpdateConnection(ctx context.Context, in *glue.UpdateConnectionInput, optFns ...func(*glue.Options)) (*glue.UpdateConnectionOutput, error)
	GetConnection(ctx context.Context, in *glue.GetConnectionInput, optFns ...func(*glue.Options)) (*glue.GetConnectionOutput, error)
	GetConnections(ctx context.Context, in *glue.GetConnectionsInput, optFns ...func(*glue.Options)) (*glue.GetConnectionsOutput, error)
	DeleteConnection(ctx context.Context, in *glue.DeleteConnectionInput, optFns ...func(*glue.Options)) (*glue.DeleteConnectionOutput, error)
}

var _ API = (*glue.Client)(nil)

// ErrorDetail is the vendor error body surfaced on recognised error codes.
type ErrorDetail struct {
	Code    string `json:"Code"`
	Message string `json:"Message,omitempty"`
}

// ---- TEST SEAMS ----
var (
	// transportStatus extracts the HTTP status of a completed call.
	transportStatus = rawStatus

	tracer = otel.Tracer("github.com/tbourn/glue-gateway/internal/catalog")
)

// Gateway forwards validated records to Glue. It is safe for concurrent use.
type Gateway struct {
	api             API
	redactPasswords bool
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithPasswordRedaction masks the PASSWORD property of connections returned
// by GetConnection and GetConnections.
func WithPasswordRedaction(on bool) Option {
	return func(g *Gateway) { g.redactPasswords = on }
}

// NewGateway wraps api.
func NewGateway(api API, opts ...Option) *Gateway {
	g := &Gateway{api: api}
	for _, o := range opts {
		o(g)
	}
	return g
}

// rawStatus reads the HTTP status recorded by the SDK on the response
// metadata. Outputs without a raw response (e.g. stubs) report 200.
func rawStatus(md middleware.Metadata) int {
	if resp, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	return http.StatusOK
}

// classifyError turns a Glue call error into a classified or unclassified
// outcome.
func classifyError(err error) envelope.Outcome {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return envelope.Unclassified(err)
	}

	status := 0
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	o := envelope.Classified(apiErr.ErrorCode(), status, ErrorDetail{
		Code:    apiErr.ErrorCode(),
		Message: apiErr.ErrorMessage(),
	})
	o.Err = err
	return o
}

// startSpan opens a client span for op. The caller must end it via finish.
func startSpan(ctx context.Context, op envelope.Operation, resource string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "glue."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "aws-api"),
			attribute.String("rpc.service", "Glue"),
			attribute.String("rpc.method", string(op)),
			attribute.String("glue.resource", resource),
		),
	)
}

// finish annotates span with the outcome and ends it.
func finish(span trace.Span, o envelope.Outcome) envelope.Outcome {
	span.SetAttributes(attribute.String("glue.outcome", o.Kind.String()))
	if o.Status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", o.Status))
	}
	if o.Kind != envelope.KindTransport {
		if o.Code != "" {
			span.SetAttributes(attribute.String("aws.error.code", o.Code))
		}
		if o.Err != nil {
			span.RecordError(o.Err)
		}
		span.SetStatus(codes.Error, o.Kind.String())
	}
	span.End()
	return o
}
