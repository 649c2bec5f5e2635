package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, PUT, OPTIONS"
	corsAllowHeaders = "Authorization, Content-Type, Accept"
	corsMaxAge       = "86400"
)

// originSet is the normalized list of origins the browser may call from. "*" admits every origin.
type originSet struct {
	all     bool
	origins map[string]struct{}
}

func newOriginSet(allowed []string) originSet {
	s := originSet{origins: make(map[string]struct{}, len(allowed))}
	for _, o := range allowed {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			s.all = true
		default:
			s.origins[o] = struct{}{}
		}
	}
	return s
}

func (s originSet) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if s.all {
		return true
	}
	_, ok := s.origins[origin]
	return ok
}

// CORS adds CORS headers for allowed origins and answers OPTIONS preflights with 204.
// The request origin is echoed back (never "*") since credentials are allowed.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	origins := newOriginSet(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		h := w.Header()
		h.Add("Vary", "Origin")

		ok := origins.allows(origin)
		if ok {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			if ok {
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
