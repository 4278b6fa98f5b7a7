package httpapi

import (
	"net/http"
	"strings"
)

// originAllowed applies the CORS origin list to WebSocket upgrades, with
// the same patterns go-chi/cors accepts: "*", exact origins, and a single
// "*" wildcard such as "https://*.example.com". Requests without an Origin
// header come from non-browser clients and are allowed.
func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return matchOrigin(s.cfg.AllowedOrigins, origin)
}

func matchOrigin(allowed []string, origin string) bool {
	origin = strings.ToLower(origin)
	for _, pattern := range allowed {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "*" || pattern == origin {
			return true
		}
		prefix, suffix, ok := strings.Cut(pattern, "*")
		if ok && len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}
