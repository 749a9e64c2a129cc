// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders. Envelopes can echo connection
// properties and crawler configuration, so gateway responses are JSON-only,
// never framed and not stored by default.
//
// The Swagger UI under DocsPrefix is the only HTML the gateway serves; it is
// exempt from the API content security policy and may be framed by the same
// origin.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	apiCSP              = "default-src 'none'; frame-ancestors 'none'"
	defaultHSTSMaxAge   = 180 * 24 * time.Hour
	revalidateDirective = "private, no-cache"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests only. Set
	// it when traffic is HTTPS end-to-end, including proxy to app.
	EnableHSTS bool
	// HSTSMaxAge defaults to 180 days when not positive.
	HSTSMaxAge time.Duration
	// NoStore adds Cache-Control: no-store plus legacy Pragma/Expires.
	// Handlers serving validators may relax it with AllowRevalidation.
	NoStore bool
	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool
	// DocsPrefix marks the Swagger UI route (e.g. "/docs/"). Empty disables
	// the exemption.
	DocsPrefix string
}

// SecurityHeaders returns a Gin middleware that hardens every response:
//
//	X-Content-Type-Options: nosniff
//	Referrer-Policy: no-referrer
//	X-Frame-Options: DENY (SAMEORIGIN under DocsPrefix)
//	Content-Security-Policy: default-src 'none'; frame-ancestors 'none' (not under DocsPrefix)
//
// plus the optional policy, cache and HSTS headers selected by opt. When
// X-Request-ID is already set it is added to Access-Control-Expose-Headers.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		docs := opt.DocsPrefix != "" && strings.HasPrefix(c.Request.URL.Path, opt.DocsPrefix)

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		if docs {
			h.Set("X-Frame-Options", "SAMEORIGIN")
		} else {
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", apiCSP)
		}

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		exposeRequestID(h)
		c.Next()
	}
}

// AllowRevalidation replaces no-store with "private, no-cache" so clients
// may keep the response and revalidate it with If-None-Match.
func AllowRevalidation(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Cache-Control", revalidateDirective)
	h.Del("Pragma")
	h.Del("Expires")
}

// exposeRequestID appends X-Request-ID to Access-Control-Expose-Headers
// without duplicating it.
func exposeRequestID(h http.Header) {
	if h.Get("X-Request-ID") == "" {
		return
	}
	const hdr = "Access-Control-Expose-Headers"
	switch cur := h.Get(hdr); {
	case cur == "":
		h.Set(hdr, "X-Request-ID")
	case !strings.Contains(cur, "X-Request-ID"):
		h.Set(hdr, cur+", X-Request-ID")
	}
}

// isHTTPS reports whether the request used HTTPS either directly or via a
// reverse proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
