package httputil

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// SourceType represents how a request was made (web, CLI, API).
type SourceType int

const (
	SourceTypeUnknown SourceType = 0
	SourceTypeWeb     SourceType = 1
	SourceTypeCLI     SourceType = 2
	SourceTypeAPI     SourceType = 3
)

// String returns a human-readable representation of the source type.
func (s SourceType) String() string {
	switch s {
	case SourceTypeWeb:
		return "web"
	case SourceTypeCLI:
		return "cli"
	case SourceTypeAPI:
		return "api"
	default:
		return "unknown"
	}
}

// RequestContext holds audit context information about the HTTP request.
// Used to populate audit fields (IP address, source type) in database records.
type RequestContext struct {
	IP         net.IP
	SourceType SourceType
	UserAgent  string
}

type requestContextKey struct{}

// NewRequestContext creates a RequestContext from an HTTP request.
// Source type is determined from headers:
//   - X-Precinct-Source: "web", "cli", "api" (explicit)
//   - User-Agent containing "prctl" -> CLI
//   - Default: Web (most requests come from the frontend)
func NewRequestContext(r *http.Request) *RequestContext {
	ipStr := GetClientIP(r)
	// Strip port if present (from RemoteAddr format "ip:port")
	if host, _, err := net.SplitHostPort(ipStr); err == nil {
		ipStr = host
	}

	ctx := &RequestContext{
		IP:        net.ParseIP(ipStr),
		UserAgent: r.Header.Get("User-Agent"),
	}

	if source := r.Header.Get("X-Precinct-Source"); source != "" {
		switch strings.ToLower(source) {
		case "web":
			ctx.SourceType = SourceTypeWeb
		case "cli":
			ctx.SourceType = SourceTypeCLI
		case "api":
			ctx.SourceType = SourceTypeAPI
		default:
			ctx.SourceType = SourceTypeUnknown
		}
	} else if ua := ctx.UserAgent; ua != "" {
		if strings.Contains(strings.ToLower(ua), "prctl") {
			ctx.SourceType = SourceTypeCLI
		} else {
			ctx.SourceType = SourceTypeWeb
		}
	}

	return ctx
}

// WithRequestContext adds RequestContext to the context.
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, reqCtx)
}

// GetRequestContext retrieves RequestContext from the context.
// Returns nil if not present.
func GetRequestContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok {
		return rc
	}
	return nil
}

// IPString returns the IP address as a string, or empty string if nil.
func (rc *RequestContext) IPString() string {
	if rc == nil || rc.IP == nil {
		return ""
	}
	return rc.IP.String()
}

// GetClientIP extracts the real client IP address from request headers.
// It handles proxy scenarios by checking headers in this order:
//  1. X-Forwarded-For (extracts first/client IP from comma-separated list)
//  2. X-Real-IP (single IP from reverse proxy)
//  3. RemoteAddr (direct connection)
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// ParseIntParam parses an integer query parameter with a default value.
// Returns defaultVal if the parameter is empty or invalid.
func ParseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return defaultVal
}

// Pagination represents common pagination parameters for API responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total,omitempty"`
}

// ParsePagination extracts pagination parameters from the query string.
// It enforces sensible defaults and maximum limits to prevent abuse.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := ParseIntParam(r.URL.Query().Get("page"), 1)
	limit := ParseIntParam(r.URL.Query().Get("limit"), defaultLimit)

	if limit > maxLimit {
		limit = maxLimit
	}
	// limit=0 would mean "everything" on some backends and a query
	// error on others; treat anything below 1 as unset.
	if limit < 1 {
		limit = defaultLimit
	}
	if page < 1 {
		page = 1
	}

	return Pagination{
		Page:  page,
		Limit: limit,
	}
}

// Offset calculates the database offset for pagination.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
