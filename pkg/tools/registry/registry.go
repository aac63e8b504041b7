// Package registry wires widget-backed tools onto an MCP server: tool
// listing with presentation metadata, argument validation, invocation
// routing, and the widget template resources.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/api"
	"github.com/openlecture/vorlesung/pkg/debug"
	"github.com/openlecture/vorlesung/pkg/observability"
	"github.com/openlecture/vorlesung/pkg/widget"
)

// Handler executes one tool invocation with already-validated raw
// arguments. It returns the structured result and the accompanying text
// summary, or an *api.APIError.
type Handler func(ctx context.Context, args json.RawMessage) (structured any, summary string, err error)

// Entry couples a tool declaration with its widget and handler.
type Entry struct {
	Tool    *mcp.Tool
	Widget  *widget.Widget
	Handler Handler
}

// Registry holds the tool entries exposed by one server.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds an entry. Registering a duplicate name replaces the
// earlier entry.
func (r *Registry) Register(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[e.Tool.Name]; !exists {
		r.order = append(r.order, e.Tool.Name)
	}
	r.entries[e.Tool.Name] = e
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Invoke runs the named tool. Unknown names fail with a not_found
// APIError; handler-level validation failures pass through unchanged.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, string, error) {
	r.mu.RLock()
	e := r.entries[name]
	r.mu.RUnlock()

	if e == nil {
		return nil, "", api.NewUnknownToolError(name)
	}

	structured, summary, err := e.Handler(ctx, args)
	if err != nil {
		observability.ToolExecutionsTotal.WithLabelValues(name, "error").Inc()
		return nil, "", err
	}
	observability.ToolExecutionsTotal.WithLabelValues(name, "ok").Inc()
	return structured, summary, nil
}

// Attach registers every entry's tool and widget resources on the MCP
// server. Tool results carry the text summary, the structured envelope,
// and the widget _meta block; widget HTML is served both under the
// exact versioned template URI and a version-agnostic template.
func (r *Registry) Attach(srv *mcp.Server) {
	for _, e := range r.Entries() {
		entry := e

		srv.AddTool(entry.Tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var raw json.RawMessage
			if req.Params != nil {
				raw = req.Params.Arguments
			}
			debug.Log("tools", "tool invoked", "tool", entry.Tool.Name)

			structured, summary, err := r.Invoke(ctx, entry.Tool.Name, raw)
			if err != nil {
				slog.Warn("tool invocation failed", "tool", entry.Tool.Name, "error", err)
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
					IsError: true,
				}, nil
			}

			result := &mcp.CallToolResult{
				Content:           []mcp.Content{&mcp.TextContent{Text: summary}},
				StructuredContent: structured,
			}
			if entry.Widget != nil {
				result.Meta = entry.Widget.Meta()
			}
			return result, nil
		})

		if entry.Widget == nil {
			continue
		}
		w := entry.Widget

		readHTML := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: widget.MIMEType,
					Text:     w.HTML,
				}},
			}, nil
		}

		srv.AddResource(&mcp.Resource{
			URI:      w.TemplateURI,
			Name:     w.ID,
			Title:    w.Title,
			MIMEType: widget.MIMEType,
		}, readHTML)

		// Hosts sometimes strip the version query before reading; a
		// template keeps those reads working.
		srv.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: "ui://widget/" + widget.TemplateName(w.TemplateURI) + "{?v}",
			Name:        w.ID,
			MIMEType:    widget.MIMEType,
		}, readHTML)
	}
}

// DecodeArgs strictly decodes raw tool arguments into dst, rejecting
// unknown fields and malformed JSON with a validation APIError.
func DecodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return api.NewValidationError("arguments", fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}
