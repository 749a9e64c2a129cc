// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the gateway's access logger. It also
// attaches the request-scoped logger that handlers retrieve with LoggerFrom.
//
// Request bodies are never logged: connection records carry database
// passwords. Query strings and header values are scrubbed of AWS access key
// IDs, credentials embedded in JDBC/URL user-info, emails and UUIDs. Sensitive
// headers (Authorization, Cookie, Set-Cookie, X-Amz-Security-Token, plus any
// configured ones) are masked entirely.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names (case-insensitive) whose values are
// replaced with "[REDACTED]".
type RedactOptions struct {
	MaskHeaders []string
}

var (
	awsKeyRE = regexp.MustCompile(`\b(?:AKIA|ASIA)[A-Z0-9]{16}\b`)
	// user:password@ inside jdbc:postgresql://user:pw@host/db and plain URLs.
	userInfoRE = regexp.MustCompile(`(//)[^/@\s:]+:[^/@\s]+@`)
	// password=... inside JDBC property strings and query strings.
	passwordRE = regexp.MustCompile(`(?i)(password|passwd|pwd)=[^&;\s]*`)
	uuidRE     = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE    = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
)

// redact scrubs secrets and identifiers from s. Credentials go first so that
// the email pattern never sees "user:pw@host".
func redact(s string) string {
	if s == "" {
		return s
	}
	out := awsKeyRE.ReplaceAllString(s, "[REDACTED:aws_key]")
	out = userInfoRE.ReplaceAllString(out, "${1}[REDACTED:credentials]@")
	out = passwordRE.ReplaceAllString(out, "${1}=[REDACTED]")
	out = uuidRE.ReplaceAllString(out, "[REDACTED:id]")
	out = emailRE.ReplaceAllString(out, "[REDACTED:email]")
	return out
}

// RedactingLogger returns a Gin middleware that attaches a request-scoped
// logger and emits one scrubbed access log line per request.
//
// Log level is INFO by default, WARN for 4xx and ERROR for 5xx. Gateway
// envelopes mirror Glue's status, so a Glue-side 400 shows up as WARN here.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization":        {},
		"cookie":               {},
		"set-cookie":           {},
		"x-amz-security-token": {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := truncate(redact(c.Request.URL.RawQuery), maxQueryLogLength)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redact(strings.Join(vv, ", "))
		}

		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		scoped := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &scoped)

		c.Next()

		status := c.Writer.Status()
		ev := scoped.Info()
		switch {
		case status >= 500:
			ev = scoped.Error()
		case status >= 400:
			ev = scoped.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}

		ev.
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
