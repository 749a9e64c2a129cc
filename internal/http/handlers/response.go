// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the two response shapes the gateway writes:
//
//   - ErrorResponse, for requests rejected before any Glue call (bad JSON,
//     failed validation, empty path names) and for the audit endpoints;
//   - envelope.Envelope, for every forwarded Glue call.
//
// Example validation failure:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "validation_failed",
//	  "message": "Key: 'S3Crawler.S3Path' Error:Field validation for 'S3Path' failed on the 'required' tag"
//	}
//
// Example forwarded call:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "status": 200, "data": ["orders-raw", "orders-delta"] }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/glue-gateway/internal/envelope"
	"github.com/tbourn/glue-gateway/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
//
// It serializes `body` as JSON with the given HTTP status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// envelopeStatus picks the outer HTTP status for env. With mirroring off, or
// when the nested status is not a valid HTTP code, the response is a plain 200.
func envelopeStatus(env envelope.Envelope, mirror bool) int {
	if !mirror || env.Status < 100 || env.Status > 599 {
		return http.StatusOK
	}
	return env.Status
}

// writeEnvelope serializes env with the status chosen by envelopeStatus.
func writeEnvelope(c *gin.Context, env envelope.Envelope, mirror bool) {
	c.JSON(envelopeStatus(env, mirror), env)
}
