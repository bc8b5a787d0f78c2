package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/domfetch/domfetch/config"
	"github.com/domfetch/domfetch/fetcher"
	"github.com/domfetch/domfetch/models"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP transport, so all logging goes to stderr.
	initLogger(cfg.Log)

	if err := cfg.Browser.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sessions := fetcher.NewSessionManager(cfg.Browser.ControlURL())
	f := fetcher.New(sessions, cfg.Fetcher)

	s := server.NewMCPServer(
		"domfetch",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	fetchTool := mcp.NewTool("fetch_rendered_html",
		mcp.WithDescription("Fetch the fully rendered HTML of a web page using a cloud headless browser. Handles JavaScript rendering, asynchronous data loading, and infinite-scroll content."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to fetch"),
		),
		mcp.WithNumber("initialWaitTime",
			mcp.Description("Fixed wait in milliseconds after navigation, letting bootstrap scripts run (default: 3000)"),
		),
		mcp.WithNumber("scrollCount",
			mcp.Description("Number of scroll-to-bottom passes used to trigger infinite-scroll loading (default: 0)"),
		),
		mcp.WithNumber("scrollWaitTime",
			mcp.Description("Per-scroll budget in milliseconds for detecting newly loaded content (default: 3000)"),
		),
		mcp.WithBoolean("stealth",
			mcp.Description("Enable anti-bot-detection evasions on the remote page (default: false)"),
		),
	)
	s.AddTool(fetchTool, handleFetch(f))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ServeStdio(s)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			slog.Error("server error", "error", err)
		}
	}

	// Tear down the remote browser session before exiting.
	sessions.Close()
	slog.Info("domfetch-mcp stopped")
}

func handleFetch(f *fetcher.Fetcher) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil || url == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		initialWait := request.GetInt("initialWaitTime", models.DefaultInitialWaitMs)
		scrollWait := request.GetInt("scrollWaitTime", models.DefaultScrollWaitMs)

		req := &models.FetchRequest{
			URL:             url,
			InitialWaitTime: &initialWait,
			ScrollCount:     request.GetInt("scrollCount", 0),
			ScrollWaitTime:  &scrollWait,
			Stealth:         request.GetBool("stealth", false),
		}
		if err := req.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := f.Fetch(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(result.Content), nil
	}
}

// initLogger configures slog based on the LogConfig, writing to stderr.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
