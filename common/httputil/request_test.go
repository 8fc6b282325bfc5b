package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name         string
		setupRequest func() *http.Request
		expectedIP   string
	}{
		{
			name: "X-Forwarded-For with single IP",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set("X-Forwarded-For", "203.0.113.195")
				return req
			},
			expectedIP: "203.0.113.195",
		},
		{
			name: "X-Forwarded-For with multiple IPs returns client IP",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set("X-Forwarded-For", "203.0.113.195, 70.41.3.18, 150.172.238.178")
				return req
			},
			expectedIP: "203.0.113.195",
		},
		{
			name: "X-Real-IP when no X-Forwarded-For",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set("X-Real-IP", "198.51.100.42")
				return req
			},
			expectedIP: "198.51.100.42",
		},
		{
			name: "RemoteAddr when no proxy headers",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/", nil)
				req.RemoteAddr = "192.0.2.1:54321"
				return req
			},
			expectedIP: "192.0.2.1:54321",
		},
		{
			name: "X-Forwarded-For takes precedence over X-Real-IP",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set("X-Forwarded-For", "203.0.113.195")
				req.Header.Set("X-Real-IP", "198.51.100.42")
				req.RemoteAddr = "192.0.2.1:54321"
				return req
			},
			expectedIP: "203.0.113.195",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.setupRequest()
			got := GetClientIP(req)
			if got != tt.expectedIP {
				t.Errorf("GetClientIP() = %v, want %v", got, tt.expectedIP)
			}
		})
	}
}

func TestNewRequestContext(t *testing.T) {
	tests := []struct {
		name           string
		setupRequest   func() *http.Request
		expectedIP     string
		expectedSource SourceType
	}{
		{
			name: "explicit CLI source header",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("POST", "/arrests", nil)
				req.RemoteAddr = "192.0.2.1:54321"
				req.Header.Set("X-Precinct-Source", "cli")
				return req
			},
			expectedIP:     "192.0.2.1",
			expectedSource: SourceTypeCLI,
		},
		{
			name: "prctl user agent inferred as CLI",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("POST", "/arrests", nil)
				req.RemoteAddr = "192.0.2.1:54321"
				req.Header.Set("User-Agent", "prctl/0.1.0")
				return req
			},
			expectedIP:     "192.0.2.1",
			expectedSource: SourceTypeCLI,
		},
		{
			name: "browser user agent defaults to web",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest("GET", "/public/procurados", nil)
				req.RemoteAddr = "203.0.113.5:443"
				req.Header.Set("User-Agent", "Mozilla/5.0")
				return req
			},
			expectedIP:     "203.0.113.5",
			expectedSource: SourceTypeWeb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewRequestContext(tt.setupRequest())
			if rc.IPString() != tt.expectedIP {
				t.Errorf("IPString() = %q, want %q", rc.IPString(), tt.expectedIP)
			}
			if rc.SourceType != tt.expectedSource {
				t.Errorf("SourceType = %v, want %v", rc.SourceType, tt.expectedSource)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal int
		expected   int
	}{
		{name: "valid positive integer", input: "42", defaultVal: 10, expected: 42},
		{name: "valid zero", input: "0", defaultVal: 10, expected: 0},
		{name: "empty string uses default", input: "", defaultVal: 25, expected: 25},
		{name: "invalid string uses default", input: "abc", defaultVal: 30, expected: 30},
		{name: "mixed string uses default", input: "12abc", defaultVal: 35, expected: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIntParam(tt.input, tt.defaultVal)
			if got != tt.expected {
				t.Errorf("ParseIntParam(%q, %d) = %d, want %d", tt.input, tt.defaultVal, got, tt.expected)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		defaultLimit int
		maxLimit     int
		expected     Pagination
	}{
		{
			name:         "defaults when no parameters",
			url:          "/items",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 1, Limit: 50},
		},
		{
			name:         "valid page and limit",
			url:          "/items?page=3&limit=25",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 3, Limit: 25},
		},
		{
			name:         "limit capped at max",
			url:          "/items?page=1&limit=5000",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 1, Limit: 1000},
		},
		{
			name:         "page below 1 clamped",
			url:          "/items?page=0&limit=25",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 1, Limit: 25},
		},
		{
			name:         "zero limit falls back to default",
			url:          "/items?limit=0",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 1, Limit: 50},
		},
		{
			name:         "negative limit falls back to default",
			url:          "/items?limit=-5",
			defaultLimit: 50,
			maxLimit:     1000,
			expected:     Pagination{Page: 1, Limit: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			got := ParsePagination(req, tt.defaultLimit, tt.maxLimit)
			if got.Page != tt.expected.Page || got.Limit != tt.expected.Limit {
				t.Errorf("ParsePagination() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	tests := []struct {
		name       string
		pagination Pagination
		expected   int
	}{
		{name: "first page offset is 0", pagination: Pagination{Page: 1, Limit: 50}, expected: 0},
		{name: "second page offset equals limit", pagination: Pagination{Page: 2, Limit: 50}, expected: 50},
		{name: "third page with limit 25", pagination: Pagination{Page: 3, Limit: 25}, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pagination.Offset()
			if got != tt.expected {
				t.Errorf("Pagination.Offset() = %d, want %d", got, tt.expected)
			}
		})
	}
}
