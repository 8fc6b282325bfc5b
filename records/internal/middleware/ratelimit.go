package middleware

import (
	"net/http"

	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/ratelimit"
)

// RateLimit throttles a route per client IP. The scope keeps separate
// counters per route so login attempts do not consume the quiz budget.
func RateLimit(limiter ratelimit.RateLimiter, scope string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), scope+":"+httputil.GetClientIP(r))
			if err != nil {
				// fail open on limiter errors
				next(w, r)
				return
			}
			if !allowed {
				httputil.WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next(w, r)
		}
	}
}
