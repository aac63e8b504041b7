// Command server runs the vorlesung lecture-video MCP server.
//
// Configuration is layered: built-in defaults, then an optional YAML
// config file, then environment variables:
//
//	VORLESUNG_CONFIG              - path to a YAML config file (optional)
//	VORLESUNG_PORT                - listen port (default: 8000)
//	VORLESUNG_ASSETS_DIR          - widget static asset root (optional)
//	VORLESUNG_ALLOWED_ORIGINS     - comma-separated CORS allow list
//	VORLESUNG_CATALOG_API_BASE    - catalog API base URL
//	VORLESUNG_CATALOG_API_KEY     - catalog OAuth client id
//	VORLESUNG_CATALOG_API_SECRET  - catalog OAuth client secret
//	VORLESUNG_AUTH_TYPE           - "none", "apikey", or "jwt"
//	VORLESUNG_DEBUG               - debug log categories, e.g. "catalog,sse"
//
// Without catalog credentials the server runs in mock mode and serves
// a fixed five-course data set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openlecture/vorlesung/pkg/auth"
	"github.com/openlecture/vorlesung/pkg/auth/apikey"
	"github.com/openlecture/vorlesung/pkg/auth/jwt"
	"github.com/openlecture/vorlesung/pkg/auth/noop"
	"github.com/openlecture/vorlesung/pkg/catalog"
	"github.com/openlecture/vorlesung/pkg/config"
	"github.com/openlecture/vorlesung/pkg/debug"
	"github.com/openlecture/vorlesung/pkg/tools/registry"
	"github.com/openlecture/vorlesung/pkg/transport"
	"github.com/openlecture/vorlesung/pkg/widget"
)

const serverVersion = "0.0.1"

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	debug.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Catalog pipeline: live search when credentials are configured,
	// mock-only otherwise.
	var searcher catalog.Searcher
	if cfg.LiveSearchEnabled() {
		searcher = catalog.NewClient(
			cfg.Catalog.APIBase,
			cfg.Catalog.APIKey,
			cfg.Catalog.APISecret,
			&http.Client{Timeout: cfg.Catalog.Timeout},
		)
		slog.Info("catalog search enabled", "api_base", cfg.Catalog.APIBase)
	} else {
		slog.Info("catalog credentials absent, serving mock data")
	}
	pipeline := catalog.NewPipeline(searcher)

	// MCP server with the lecture-video tool and its widget resource.
	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: "vorlesung", Version: serverVersion},
		nil,
	)
	reg := registry.New()
	reg.Register(registry.NewPlayLectureVideo(pipeline, widget.PlayLectureVideo(cfg.Server.AssetsDir)))
	reg.Attach(mcpServer)

	authChain, err := buildAuthChain(cfg)
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	sessions := transport.NewSessionManager(mcpServer, transport.MessagePath)
	srv := transport.NewServer(cfg, sessions, authChain)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			"addr", srv.Addr(),
			"auth", cfg.Auth.Type,
			"mock_mode", !cfg.LiveSearchEnabled())
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// buildAuthChain maps the auth config onto an authenticator chain.
// Type "none" installs the no-op authenticator, so every request passes
// with an anonymous identity.
func buildAuthChain(cfg *config.Config) (*auth.AuthChain, error) {
	switch cfg.Auth.Type {
	case "", "none":
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{&noop.Authenticator{}},
			DefaultDecision: auth.Yes,
		}, nil

	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			entries = append(entries, apikey.RawKeyEntry{
				Key:      k.Key,
				Identity: auth.Identity{Subject: k.Subject},
			})
		}
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{apikey.New(entries)},
			DefaultDecision: auth.No,
		}, nil

	case "jwt":
		authn := jwt.New([]byte(cfg.Auth.JWT.Secret), cfg.Auth.JWT.Issuer, cfg.Auth.JWT.Audience)
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}, nil

	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}
}
