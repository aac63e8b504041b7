package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware from an AuthChain.
// It checks the bypass list, runs authentication, and injects the
// identity into the request context. A nil chain disables auth entirely.
func Middleware(chain *AuthChain, bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		if chain == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] || r.Method == http.MethodOptions || BypassForAssets(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision == No {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				unauthorized(w)
				return
			}

			if result.Decision != Yes || result.Identity == nil {
				unauthorized(w)
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				http.Error(w, `{"error":{"type":"server_error","message":"internal authentication error"}}`, http.StatusInternalServerError)
				return
			}

			slog.Debug("authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			ctx := SetIdentity(r.Context(), result.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"type":"invalid_request","message":"authentication required"}}`))
}

// DefaultBypassEndpoints lists paths that skip authentication. The SSE
// open path is public: hosts connect before they know the session id,
// and the id itself gates message delivery.
var DefaultBypassEndpoints = []string{"/healthz", "/metrics", "/mcp"}

// BypassForAssets reports whether a request path looks like a widget
// static asset, which is always public.
func BypassForAssets(path string) bool {
	return strings.Contains(path, ".") && !strings.HasPrefix(path, "/mcp")
}
