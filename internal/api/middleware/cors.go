package middleware

import (
	"net/http"
	"os"
	"sort"
	"strings"
)

// RouteMethods registers handlers on a ServeMux and remembers the method of
// every pattern, so preflight responses advertise only what is served.
type RouteMethods struct {
	mux  *http.ServeMux
	seen map[string]struct{}
}

// NewRouteMethods wraps mux
func NewRouteMethods(mux *http.ServeMux) *RouteMethods {
	return &RouteMethods{mux: mux, seen: make(map[string]struct{})}
}

// HandleFunc registers a "METHOD /path" pattern
func (m *RouteMethods) HandleFunc(pattern string, handler http.HandlerFunc) {
	m.mux.HandleFunc(pattern, handler)
	if method, _, ok := strings.Cut(pattern, " "); ok && method != "" {
		m.seen[method] = struct{}{}
		// ServeMux answers HEAD for GET patterns
		if method == http.MethodGet {
			m.seen[http.MethodHead] = struct{}{}
		}
	}
}

// Methods returns the registered methods plus OPTIONS, sorted
func (m *RouteMethods) Methods() []string {
	out := make([]string, 0, len(m.seen)+1)
	for method := range m.seen {
		out = append(out, method)
	}
	if _, ok := m.seen[http.MethodOptions]; !ok {
		out = append(out, http.MethodOptions)
	}
	sort.Strings(out)
	return out
}

// getAllowedOrigins returns the list of allowed origins from environment or defaults
func getAllowedOrigins() []string {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		// development default; production sets ALLOWED_ORIGINS
		return []string{"*"}
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(allowedOriginsEnv, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// CORS adds CORS headers and answers preflight requests. methods is the
// Access-Control-Allow-Methods list, normally RouteMethods.Methods().
func CORS(methods []string) func(http.Handler) http.Handler {
	allowedOrigins := getAllowedOrigins()
	allowMethods := strings.Join(methods, ", ")
	wildcard := len(allowedOrigins) > 0 && allowedOrigins[0] == "*"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && isAllowedOrigin(origin, allowedOrigins) {
				if wildcard {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, If-None-Match")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
