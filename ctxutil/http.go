package ctxutil

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const clientIPKey = "client_ip"

// SetClientIP sets client IP to context.
func SetClientIP(ctx context.Context, ip string) context.Context {
	return SetValue(ctx, clientIPKey, ip)
}

// GetClientIP gets client IP from context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := GetValue(ctx, clientIPKey).(string); ok {
		return ip
	}
	if c, ok := GetGinContext(ctx); ok {
		return c.ClientIP()
	}
	return ""
}

// ClientIPFromRequest resolves the caller address from proxy headers or RemoteAddr.
func ClientIPFromRequest(req *http.Request) string {
	if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := req.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host
	}
	if req.RemoteAddr == "" {
		return "unknown"
	}
	return req.RemoteAddr
}
