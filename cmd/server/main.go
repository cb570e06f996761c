package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/leadscope/mcpgram/config"
	"github.com/leadscope/mcpgram/internal/analysis"
	"github.com/leadscope/mcpgram/internal/export"
	"github.com/leadscope/mcpgram/internal/instagram"
	"github.com/leadscope/mcpgram/internal/registry"
	"github.com/leadscope/mcpgram/internal/resolver"
	"github.com/leadscope/mcpgram/internal/runtime"
	"github.com/leadscope/mcpgram/internal/security"
	"github.com/leadscope/mcpgram/internal/session"
	"github.com/leadscope/mcpgram/internal/telemetry"
	"github.com/leadscope/mcpgram/pkg/pagination"
	"github.com/leadscope/mcpgram/pkg/version"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var useStdio bool
	flag.BoolVar(&useStdio, "stdio", false, "Run server over stdio transport")
	flag.Parse()

	logger := zlog.With().Str("service", "mcpgram-server").Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("config: load failed")
		fmt.Fprintln(os.Stderr, "invalid configuration; set MCPGRAM_USERNAME and MCPGRAM_PASSWORD")
		os.Exit(1)
	}

	// Exports are opt-in: without MCPGRAM_EXPORT_DIRS every export_path is
	// rejected, analysis tools still work.
	secMgr, err := security.NewManager(cfg.ExportDirs)
	if err != nil {
		logger.Error().Err(err).Msg("security: failed to initialize export allow-list")
		fmt.Fprintln(os.Stderr, "invalid export configuration; check MCPGRAM_EXPORT_DIRS")
		os.Exit(1)
	}
	if dirs := secMgr.AllowedDirectories(); len(dirs) > 0 {
		logger.Info().Strs("export_dirs", dirs).Msg("export allow-list configured")
	}

	hooks := telemetry.NewHooks(logger)

	gateway := instagram.NewGateway(cfg.GatewayURL, nil)
	gateway.SetObserver(hooks.OnProviderCall)

	sessions := session.NewManager(gateway, instagram.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	})

	toolRegistry := registry.New()
	if os.Getenv("OPENAI_API_KEY") != "" {
		model, err := openai.New()
		if err != nil {
			logger.Warn().Err(err).Msg("themes: model init failed, theme analysis disabled")
		} else {
			toolRegistry.WithModel(model)
		}
	}

	pacing := pagination.Pacing{Min: cfg.PacingMin, Max: cfg.PacingMax}
	engine := analysis.NewEngine(gateway, pacing, analysis.DefaultCaps(),
		analysis.NewThemeSummarizer(toolRegistry.Model()))

	limits := runtime.NewLimits(config.DefaultMaxConcurrentRequests, cfg.OperationTimeout)
	runtimeController := runtime.NewController(limits)
	runtimeMW := runtime.NewMiddleware(runtimeController)

	samplingFilter := registry.NewSamplingToolFilterFromEnv()

	srv := server.NewMCPServer(
		"Instagram Analytics Server",
		version.Version(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(hooks.Build()),
		server.WithToolHandlerMiddleware(runtimeMW.ToolMiddleware),
		server.WithToolFilter(func(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
			return samplingFilter.FilterTools(ctx, tools)
		}),
	)

	registry.RegisterAnalysisTools(srv, toolRegistry, registry.Deps{
		Session:  sessions,
		Resolver: resolver.New(gateway),
		Engine:   engine,
		Exports:  export.NewWriter(secMgr),
	})

	logger.Info().
		Ctx(ctx).
		Str("version", version.Version()).
		Str("gateway_url", cfg.GatewayURL).
		Int("max_concurrent_requests", limits.MaxConcurrentRequests).
		Dur("operation_timeout", limits.OperationTimeout).
		Bool("themes_enabled", toolRegistry.Model() != nil).
		Bool("stdio", useStdio).
		Msg("server bootstrap configured")

	if useStdio {
		if err := server.ServeStdio(srv); err != nil {
			// Use stderr for transport errors so clients don't misinterpret output
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintln(os.Stderr, "no transport selected; use --stdio to run over stdio")
	os.Exit(2)
}
