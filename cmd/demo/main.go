// Command demo walks the MCP surface of a running vorlesung server:
// it connects over SSE, lists tools, calls play_lecture_video, and
// prints the structured result plus the widget resource header.
//
// Usage:
//
//	demo [-server http://localhost:8000] [-goal "machine learning"] [-difficulty any] [-max 5]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/api"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "vorlesung server base URL")
	goal := flag.String("goal", "machine learning", "learning goal to search for")
	difficulty := flag.String("difficulty", "", "difficulty filter: beginner, intermediate, advanced, any")
	maxResults := flag.Int("max", 0, "maximum number of courses (0 for server default)")
	flag.Parse()

	if err := run(*serverURL, *goal, *difficulty, *maxResults); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(serverURL, goal, difficulty string, maxResults int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("=== vorlesung MCP demo ===")
	fmt.Println()

	// 1. Connect over SSE.
	client := mcp.NewClient(&mcp.Implementation{Name: "vorlesung-demo", Version: "0.0.1"}, nil)
	transport := &mcp.SSEClientTransport{Endpoint: serverURL + "/mcp"}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", serverURL, err)
	}
	defer session.Close()
	fmt.Printf("[1] Connected to %s\n", serverURL)

	// 2. List tools.
	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing tools: %w", err)
	}
	fmt.Printf("\n[2] Tools (%d):\n", len(tools.Tools))
	for _, t := range tools.Tools {
		fmt.Printf("    %-20s %s\n", t.Name, t.Description)
	}

	// 3. Call play_lecture_video.
	args := map[string]any{"learningGoal": goal}
	if difficulty != "" {
		args["difficulty"] = difficulty
	}
	if maxResults > 0 {
		args["maxResults"] = maxResults
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "play_lecture_video",
		Arguments: args,
	})
	if err != nil {
		return fmt.Errorf("calling play_lecture_video: %w", err)
	}
	if res.IsError {
		data, _ := json.MarshalIndent(res.Content, "", "  ")
		return fmt.Errorf("tool error:\n%s", data)
	}

	for _, c := range res.Content {
		if text, ok := c.(*mcp.TextContent); ok {
			fmt.Printf("\n[3] %s\n", text.Text)
		}
	}

	// 4. Decode the structured envelope.
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return fmt.Errorf("marshaling structured content: %w", err)
	}
	var env api.QueryEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}

	fmt.Printf("\n[4] Results (mock=%v):\n", env.UsingMockData)
	for i, course := range env.Courses {
		fmt.Printf("    %d. %s (%s, %s)\n", i+1, course.Name, course.University, course.DifficultyLevel)
		fmt.Printf("       %s\n", course.CourseURL)
	}

	// 5. Fetch the widget template resource.
	templateURI, _ := res.Meta["openai/outputTemplate"].(string)
	if templateURI != "" {
		resource, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: templateURI})
		if err != nil {
			return fmt.Errorf("reading widget resource: %w", err)
		}
		for _, c := range resource.Contents {
			fmt.Printf("\n[5] Widget resource %s (%s, %d bytes)\n", c.URI, c.MIMEType, len(c.Text))
		}
	}

	fmt.Println("\n=== demo complete ===")
	return nil
}
