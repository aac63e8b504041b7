package registry

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/api"
	"github.com/openlecture/vorlesung/pkg/catalog"
	"github.com/openlecture/vorlesung/pkg/widget"
)

// playLectureVideoSchema declares the tool arguments. It matches the
// validation in api.ValidateSearchQuery; additionalProperties stays
// false so typo'd argument names fail loudly instead of being ignored.
var playLectureVideoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"learningGoal": map[string]any{
			"type":        "string",
			"description": "What the user wants to learn, e.g. 'machine learning'.",
		},
		"courseQuery": map[string]any{
			"type":        "string",
			"description": "Optional explicit search term overriding the learning goal.",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []string{"beginner", "intermediate", "advanced", "any"},
		},
		"language": map[string]any{
			"type":        "string",
			"description": "Preferred course language.",
		},
		"maxResults": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": 10,
		},
	},
	"required":             []string{"learningGoal"},
	"additionalProperties": false,
}

// NewPlayLectureVideo builds the registry entry for the course search
// tool backed by the given pipeline and widget.
func NewPlayLectureVideo(pipeline *catalog.Pipeline, w *widget.Widget) *Entry {
	return &Entry{
		Tool: &mcp.Tool{
			Name:        w.ID,
			Title:       w.Title,
			Description: "Search Coursera for courses matching a learning goal and show them in an interactive player widget with lecture video previews.",
			InputSchema: playLectureVideoSchema,
			Annotations: &mcp.ToolAnnotations{
				ReadOnlyHint: true,
			},
		},
		Widget: w,
		Handler: func(ctx context.Context, args json.RawMessage) (any, string, error) {
			var q api.SearchQuery
			if err := DecodeArgs(args, &q); err != nil {
				return nil, "", err
			}
			env, err := pipeline.Search(ctx, &q)
			if err != nil {
				return nil, "", err
			}
			return env, catalog.Summary(env), nil
		},
	}
}
