package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/hireai/waitlist-manager/internal/entity"
)

type contextKey string

const (
	ClientIPKey        contextKey = "client_ip"
	ClientUserAgentKey contextKey = "client_user_agent"
)

// ClientIdentifier extracts client IP and user agent into the request context
func ClientIdentifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ClientIPKey, getClientIP(r))
		ctx = context.WithValue(ctx, ClientUserAgentKey, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getClientIP extracts the real client IP from request headers
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(ip)
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Check CF-Connecting-IP (Cloudflare)
	if cfip := r.Header.Get("CF-Connecting-IP"); cfip != "" {
		return strings.TrimSpace(cfip)
	}

	// Fall back to RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// GetClientIP retrieves the client IP from context
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}

// GetClientMeta returns the request metadata recorded with registrations.
func GetClientMeta(ctx context.Context) entity.ClientMeta {
	ua, _ := ctx.Value(ClientUserAgentKey).(string)
	return entity.ClientMeta{
		IP:        GetClientIP(ctx),
		UserAgent: ua,
	}
}
