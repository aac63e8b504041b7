package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/openlecture/vorlesung/pkg/auth"
	"github.com/openlecture/vorlesung/pkg/config"
	"github.com/openlecture/vorlesung/pkg/observability"
)

// Server owns the HTTP listener and the session manager's lifetime.
type Server struct {
	httpServer *http.Server
	sessions   *SessionManager
}

// NewServer assembles the full handler stack around the router and
// binds it to the configured port. authChain may be nil to disable
// authentication.
func NewServer(cfg *config.Config, sessions *SessionManager, authChain *auth.AuthChain) *Server {
	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	router := NewRouter(sessions, cfg.Server.AssetsDir, metricsPath)

	handler := Chain(
		Recovery(),
		RequestID(),
		Logging(nil),
		observability.MetricsMiddleware,
		CORS(cfg.Server.AllowedOrigins),
		auth.Middleware(authChain, auth.DefaultBypassEndpoints),
	)(router)

	return &Server{
		httpServer: &http.Server{
			Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:     handler,
			ReadTimeout: cfg.Server.ReadTimeout,
			// WriteTimeout stays zero: SSE streams are open-ended.
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		sessions: sessions,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Handler exposes the assembled middleware stack, so tests can serve it
// without binding the configured port.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe blocks serving requests until Shutdown or a listener
// error. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	slog.Info("server listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown closes every open session and then drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.CloseAll()
	return s.httpServer.Shutdown(ctx)
}
