package transport

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/observability"
)

// Session is one open SSE connection: its id, live transport, and the
// protocol session the MCP server runs over it.
type Session struct {
	ID        string
	Transport *SSEServerTransport
	proto     *mcp.ServerSession
}

// SessionManager tracks open sessions by id. Opening a session connects
// a fresh protocol session of the shared MCP server over a new SSE
// transport; closing removes the entry and tears the protocol session
// down. Operations on absent ids fail softly, never crash: a session id
// is client-supplied input.
type SessionManager struct {
	server      *mcp.Server
	messagePath string

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a manager connecting sessions to server.
// messagePath is advertised to clients in the SSE endpoint event.
func NewSessionManager(server *mcp.Server, messagePath string) *SessionManager {
	return &SessionManager{
		server:      server,
		messagePath: messagePath,
		sessions:    make(map[string]*Session),
	}
}

// Open creates a session over the given streaming response writer: a
// fresh uuid, a new SSE transport (headers and endpoint event are
// written immediately), and a new protocol session. The caller keeps the
// HTTP handler alive until the session ends; teardown happens in Close.
func (m *SessionManager) Open(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	id := uuid.NewString()

	t, err := NewSSEServerTransport(id, m.messagePath, w)
	if err != nil {
		return nil, err
	}

	proto, err := m.server.Connect(ctx, t, nil)
	if err != nil {
		t.Close()
		return nil, err
	}

	s := &Session{ID: id, Transport: t, proto: proto}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	observability.SSESessionsActive.Inc()
	return s, nil
}

// Get returns the session for id, or nil when absent or closed.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Close removes the session and tears down its transport and protocol
// session. Closing an absent id is a no-op; CLOSED is terminal.
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	s.Transport.Close()
	if s.proto != nil {
		s.proto.Close()
	}
	observability.SSESessionsActive.Dec()
}

// Count returns the number of open sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll tears down every open session, for server shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Close(id)
	}
}
