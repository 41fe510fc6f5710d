package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/bitbucket-dc-mcp/internal/mcpadapter"
	"github.com/povarna/bitbucket-dc-mcp/internal/setup"
	"github.com/povarna/bitbucket-dc-mcp/internal/setup/logger"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const version = "1.0.0"

func main() {
	var (
		transport = pflag.String("transport", "stdio", "MCP transport protocol: stdio, sse, or streamable-http")
		host      = pflag.String("host", "127.0.0.1", "Host to bind (SSE/HTTP only)")
		port      = pflag.Int("port", 8000, "Port to bind (SSE/HTTP only)")
		logLevel  = pflag.String("log-level", "warn", "Logging level")
	)
	pflag.Parse()

	log := logger.New(*logLevel)

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration errors are fatal: no tool call is served without a
	// resolved configuration.
	deps, err := setup.Wire(&log)
	if err != nil {
		log.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	log.Info().Str("base_url", deps.Config.BaseURL).Msg("Bitbucket DC MCP server starting")

	server := mcpadapter.NewServer(version, deps.Client)

	switch *transport {
	case "stdio":
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			// EOF / "server is closing" is expected when stdin closes.
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
				log.Debug().Err(err).Msg("MCP server stopped")
				return
			}
			log.Error().Err(err).Msg("Failed to run mcp server")
			os.Exit(1)
		}
	case "sse":
		handler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return server }, nil)
		serveHTTP(ctx, &log, *host, *port, handler)
	case "streamable-http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		serveHTTP(ctx, &log, *host, *port, handler)
	default:
		log.Error().Str("transport", *transport).Msg("Unknown transport")
		os.Exit(1)
	}
}

// serveHTTP runs the network transports behind a CORS wrapper, with a plain
// health endpoint on the same mux, and drains on context cancellation.
func serveHTTP(ctx context.Context, log *zerolog.Logger, host string, port int, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(mux),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("address", addr).Msg("Serving MCP over HTTP")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
