package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig lists what browsers may send cross-origin. AllowedOrigins
// entries are exact origins, "*.example.com" suffix patterns, or "*"
// for any origin.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CORS answers preflight requests and stamps the allow headers on
// matching origins. Requests from origins outside the list pass
// through unstamped; the browser enforces the block.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if allow := matchOrigin(cfg.AllowedOrigins, origin); allow != "" {
					w.Header().Set("Access-Control-Allow-Origin", allow)
					w.Header().Set("Access-Control-Allow-Methods", methods)
					w.Header().Set("Access-Control-Allow-Headers", headers)
					w.Header().Set("Access-Control-Max-Age", "300")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		switch {
		case a == "*":
			return "*"
		case strings.HasPrefix(a, "*."):
			// "*.precinct.example" matches "https://app.precinct.example"
			if strings.HasSuffix(origin, a[1:]) {
				return origin
			}
		case a == origin:
			return origin
		}
	}
	return ""
}
