package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openlecture/vorlesung/pkg/api"
	"github.com/openlecture/vorlesung/pkg/debug"
)

// Endpoint paths. The message path is advertised to SSE clients in the
// endpoint event, so both constants travel together.
const (
	SSEPath     = "/mcp"
	MessagePath = "/mcp/messages"
)

// Router dispatches the server's HTTP surface: the SSE open endpoint,
// the message-post endpoint, health, metrics, and widget static assets.
type Router struct {
	sessions      *SessionManager
	static        *StaticHandler
	metricsPath   string
	serveMetrics  bool
	metricHandler http.Handler
}

// NewRouter builds the router over the given session manager and asset
// root. metricsPath empty disables the metrics endpoint.
func NewRouter(sessions *SessionManager, assetsDir, metricsPath string) *Router {
	return &Router{
		sessions:      sessions,
		static:        NewStaticHandler(assetsDir),
		metricsPath:   metricsPath,
		serveMetrics:  metricsPath != "",
		metricHandler: promhttp.Handler(),
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == SSEPath && r.Method == http.MethodGet:
		rt.handleSSE(w, r)
	case r.URL.Path == MessagePath && r.Method == http.MethodPost:
		rt.handleMessage(w, r)
	case r.URL.Path == "/healthz" && r.Method == http.MethodGet:
		rt.handleHealth(w, r)
	case rt.serveMetrics && r.URL.Path == rt.metricsPath && r.Method == http.MethodGet:
		rt.metricHandler.ServeHTTP(w, r)
	case r.Method == http.MethodGet:
		rt.static.ServeHTTP(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleSSE opens a session and holds the stream until the client
// disconnects or the session is closed from elsewhere.
func (rt *Router) handleSSE(w http.ResponseWriter, r *http.Request) {
	session, err := rt.sessions.Open(r.Context(), w)
	if err != nil {
		slog.Error("opening SSE session", "error", err)
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	slog.Info("session opened", "session_id", session.ID, "remote_addr", r.RemoteAddr)

	select {
	case <-r.Context().Done():
	case <-session.Transport.Done():
	}

	rt.sessions.Close(session.ID)
	slog.Info("session closed", "session_id", session.ID)
}

// handleMessage routes an inbound JSON-RPC message to its session.
// Missing session id is a 400, unknown id a 404; both are client errors
// carried as structured JSON.
func (rt *Router) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		writeError(w, http.StatusBadRequest, api.NewValidationError("sessionId", "sessionId query parameter is required"))
		return
	}

	session := rt.sessions.Get(id)
	if session == nil {
		debug.Log("transport", "message for unknown session", "session_id", id)
		writeError(w, http.StatusNotFound, api.NewSessionNotFoundError(id))
		return
	}

	session.Transport.HandleMessage(w, r)
}

func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": rt.sessions.Count(),
	})
}

// writeError serializes an APIError as the response body.
func writeError(w http.ResponseWriter, status int, err *api.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: err})
}
