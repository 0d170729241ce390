package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/catalog"
	"github.com/aatrey56/fpl-sim/internal/config"
	"github.com/aatrey56/fpl-sim/internal/game"
	"github.com/aatrey56/fpl-sim/internal/logger"
	"github.com/aatrey56/fpl-sim/internal/random"
	"github.com/aatrey56/fpl-sim/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	var (
		transport   = flag.String("transport", "stdio", "transport: stdio|http")
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		catalogPath = flag.String("catalog", cfg.CatalogPath, "athlete catalog CSV")
		derivedRoot = flag.String("derived-root", cfg.DerivedRoot, "root directory for session reports")
		seed        = flag.Int64("seed", cfg.Seed, "random seed (0 = random)")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via FPL_MCP_API_KEY (http only)")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	// stdout carries the stdio transport.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	f, err := os.Open(*catalogPath)
	if err != nil {
		log.WithError(err).Fatal("opening catalog")
	}
	cat, err := catalog.Parse(f)
	f.Close()
	if err != nil {
		log.WithError(err).Fatal("catalog load failed")
	}

	rng, usedSeed, err := random.NewRand(*seed)
	if err != nil {
		log.WithError(err).Fatal("seeding random source")
	}
	log.WithField("seed", usedSeed).Debug("random source ready")

	gs := &gameServer{sess: game.New(cat, rng, game.Options{
		Logger:  log,
		Reports: store.NewFileStore(*derivedRoot),
	})}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-sim",
			Version: "0.1.0",
		},
		nil,
	)
	registry := registerTools(server, gs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *transport {
	case "stdio":
		log.Info("MCP stdio server started")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("stdio server stopped")
		}
	case "http":
		apiKey := strings.TrimSpace(cfg.APIKey)
		if *requireAuth && apiKey == "" {
			log.Fatal("FPL_MCP_API_KEY is required (set env var or run with --require-auth=false)")
		}
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{JSONResponse: true})

		srv := &http.Server{
			Addr:              *addr,
			Handler:           newRouter(*mcpPath, handler, registry, apiKey, *authHeader),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.WithFields(logrus.Fields{"addr": *addr, "path": *mcpPath}).Info("MCP HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	default:
		log.Fatalf("invalid transport: %s", *transport)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	if err := gs.sess.Finish(); err != nil {
		log.WithError(err).Error("writing session reports")
	}
}

func registerTools(server *mcp.Server, gs *gameServer) []toolInfo {
	registry := make([]toolInfo, 0, 10)

	addTool(server, &registry, &mcp.Tool{
		Name:        "buy_player",
		Description: "Buy a player from the market onto your squad",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args BuyArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.buy(args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "sell_player",
		Description: "Sell the player at a 1-based squad position and refund the price",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SellArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.sell(args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "simulate_gameweek",
		Description: "Play the next gameweek against the bot (needs a full squad)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.simulate())
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "autofill_squad",
		Description: "Fill the remaining squad places with the cheapest players that fit",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.autofill())
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "clear_squad",
		Description: "Release every player in your squad and refund the budget",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.clear())
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "show_squad",
		Description: "Your squad with prices and last gameweek points",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.roster(false))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "show_bot_squad",
		Description: "The bot's squad with prices and last gameweek points",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.roster(true))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "available_players",
		Description: "Players still on the market, filtered by position and club",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AvailableArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.available(args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "season_status",
		Description: "Budget, gameweek, cumulative scores and the verdict once the season ends",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.status())
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "audit_ledger",
		Description: "Replay the transaction ledger and compare it with both squads",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(gs.audit())
	})

	return registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

// toolError prefixes coded domain errors with their code so clients can
// branch on it.
func toolError(err error) *mcp.CallToolResult {
	text := fmt.Sprintf("error: %v", err)
	if code := apperr.CodeOf(err); code != "" {
		text = fmt.Sprintf("error [%s]: %v", code, err)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
