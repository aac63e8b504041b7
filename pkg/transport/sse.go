// Package transport implements the HTTP/SSE surface of the vorlesung
// server: a server-side SSE transport for the MCP protocol, explicit
// session bookkeeping keyed by session id, request routing with CORS,
// and widget static asset serving.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/debug"
)

// SSEServerTransport is the server side of one SSE stream: outbound
// JSON-RPC messages flow as SSE "message" events on the long-lived GET
// response, inbound messages arrive via HandleMessage from POSTs to the
// message endpoint. It implements both mcp.Transport and mcp.Connection
// for a single connection.
type SSEServerTransport struct {
	sessionID string
	endpoint  string // message path plus sessionId query parameter

	w       http.ResponseWriter
	flusher http.Flusher

	incoming chan jsonrpc.Message
	done     chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
}

var (
	_ mcp.Transport  = (*SSEServerTransport)(nil)
	_ mcp.Connection = (*SSEServerTransport)(nil)
)

// NewSSEServerTransport creates a transport writing SSE frames to w.
// messagePath is the POST endpoint advertised to the client in the
// initial endpoint event. The ResponseWriter must support flushing.
func NewSSEServerTransport(sessionID, messagePath string, w http.ResponseWriter) (*SSEServerTransport, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	return &SSEServerTransport{
		sessionID: sessionID,
		endpoint:  messagePath + "?sessionId=" + url.QueryEscape(sessionID),
		w:         w,
		flusher:   flusher,
		incoming:  make(chan jsonrpc.Message, 10),
		done:      make(chan struct{}),
	}, nil
}

// Connect writes the SSE response headers and the endpoint event telling
// the client where to POST its messages, then returns the transport as
// the live connection.
func (t *SSEServerTransport) Connect(context.Context) (mcp.Connection, error) {
	h := t.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	t.w.WriteHeader(http.StatusOK)

	if err := t.writeEvent("endpoint", t.endpoint); err != nil {
		return nil, err
	}
	debug.Log("sse", "session stream opened", "session_id", t.sessionID)
	return t, nil
}

// Read returns the next inbound message. It returns io.EOF once the
// transport is closed.
func (t *SSEServerTransport) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg := <-t.incoming:
		return msg, nil
	case <-t.done:
		return nil, io.EOF
	}
}

// Write emits one outbound message as an SSE "message" event.
func (t *SSEServerTransport) Write(ctx context.Context, msg jsonrpc.Message) error {
	select {
	case <-t.done:
		return fmt.Errorf("session %s: %w", t.sessionID, io.ErrClosedPipe)
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := jsonrpc.EncodeMessage(msg)
	if err != nil {
		return err
	}
	return t.writeEvent("message", string(data))
}

// SessionID identifies this connection.
func (t *SSEServerTransport) SessionID() string { return t.sessionID }

// Close is idempotent. Pending and future Reads return io.EOF;
// the HTTP handler holding the stream unblocks via Done.
func (t *SSEServerTransport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		debug.Log("sse", "session stream closed", "session_id", t.sessionID)
	})
	return nil
}

// Done is closed when the transport closes.
func (t *SSEServerTransport) Done() <-chan struct{} { return t.done }

// HandleMessage accepts one inbound JSON-RPC message POSTed by the
// client and queues it for Read. Responds 202 on success.
func (t *SSEServerTransport) HandleMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}

	msg, err := jsonrpc.DecodeMessage(body)
	if err != nil {
		http.Error(w, "invalid JSON-RPC message", http.StatusBadRequest)
		return
	}

	select {
	case t.incoming <- msg:
		w.WriteHeader(http.StatusAccepted)
	case <-t.done:
		http.Error(w, "session closed", http.StatusNotFound)
	case <-r.Context().Done():
	}
}

// writeEvent writes one SSE frame and flushes it to the client.
func (t *SSEServerTransport) writeEvent(event, data string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := fmt.Fprintf(t.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	t.flusher.Flush()
	return nil
}
