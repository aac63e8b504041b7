// Package widget describes the chat-host UI component backing the
// play_lecture_video tool: its template resource, the _meta keys the
// host reads, and the HTML payload served for the template URI.
package widget

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/debug"
)

// MIMEType marks the resource as host-renderable widget HTML.
const MIMEType = "text/html+skybridge"

//go:embed assets/play-lecture-video.html
var embeddedHTML string

// Widget holds the presentation metadata for one widget-backed tool.
type Widget struct {
	ID          string
	Title       string
	TemplateURI string
	Invoking    string
	Invoked     string
	// ResponseText is shown by hosts that render the widget instead of
	// the tool's text content.
	ResponseText string
	HTML         string
}

// PlayLectureVideo returns the widget descriptor for the course player,
// resolving its HTML from assetsDir when possible and falling back to
// the embedded copy.
func PlayLectureVideo(assetsDir string) *Widget {
	return &Widget{
		ID:           "play_lecture_video",
		Title:        "Coursera Lecture Video Player",
		TemplateURI:  "ui://widget/play_lecture_video.html?v=0.0.1",
		Invoking:     "Loading your Coursera course preview",
		Invoked:      "Loaded your Coursera course preview",
		ResponseText: "Here are the courses I found. Pick one to watch its preview lecture.",
		HTML:         loadHTML(assetsDir, "play-lecture-video"),
	}
}

// Meta returns the _meta block hosts read to wire the widget to tool
// results.
func (w *Widget) Meta() mcp.Meta {
	return mcp.Meta{
		"openai/outputTemplate":          w.TemplateURI,
		"openai/toolInvocation/invoking": w.Invoking,
		"openai/toolInvocation/invoked":  w.Invoked,
		"openai/widgetAccessible":        true,
		"openai/resultCanProduceWidget":  true,
	}
}

// loadHTML resolves the widget HTML from disk. Resolution order:
// <dir>/<name>.html, then the last sorted versioned build
// <dir>/<name>-*.html, then <dir>/src/components/<name>.html, finally
// the embedded copy.
func loadHTML(dir, name string) string {
	if dir != "" {
		candidates := []string{
			filepath.Join(dir, name+".html"),
			versionedBuild(dir, name),
			filepath.Join(dir, "src", "components", name+".html"),
		}
		for _, path := range candidates {
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err == nil && len(data) > 0 {
				debug.Log("tools", "widget html loaded", "path", path)
				return string(data)
			}
		}
	}
	return embeddedHTML
}

// versionedBuild finds the lexically last <dir>/<name>-*.html, matching
// hashed build outputs like play-lecture-video-3f2d1a.html.
func versionedBuild(dir, name string) string {
	matches, err := filepath.Glob(filepath.Join(dir, name+"-*.html"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}

// TemplateName extracts the resource name from a ui:// template URI,
// e.g. "play_lecture_video.html" from the versioned URI.
func TemplateName(uri string) string {
	trimmed := strings.TrimPrefix(uri, "ui://widget/")
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}
