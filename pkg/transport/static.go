package transport

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// mimeTypes maps asset extensions to content types. Anything else is
// served as an opaque octet stream.
var mimeTypes = map[string]string{
	".html": "text/html",
	".js":   "application/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// StaticHandler serves widget assets from root. Paths escaping the root
// are rejected with 403; assets are cached for an hour since widget
// builds are content-versioned.
type StaticHandler struct {
	root string
}

// NewStaticHandler creates a handler over root. An empty root disables
// serving (every request 404s).
func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.root == "" {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, "/")
	if rel == "" {
		rel = "index.html"
	}

	full := filepath.Join(h.root, filepath.FromSlash(rel))

	// Reject anything resolving outside the asset root.
	absRoot, err := filepath.Abs(h.root)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	absFull, err := filepath.Abs(full)
	if err != nil || (absFull != absRoot && !strings.HasPrefix(absFull, absRoot+string(filepath.Separator))) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	data, err := os.ReadFile(absFull)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	contentType := mimeTypes[strings.ToLower(filepath.Ext(absFull))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
