package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/booksmcp/booksmcp/internal/api"
	"github.com/booksmcp/booksmcp/internal/config"
	"github.com/booksmcp/booksmcp/internal/logger"
	"github.com/booksmcp/booksmcp/internal/service/books"
	"github.com/booksmcp/booksmcp/internal/service/tools"
	"github.com/booksmcp/booksmcp/internal/telemetry"
	"github.com/booksmcp/booksmcp/pkg/version"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "booksmcp"

var (
	startServerCmdHost        string
	startServerCmdPort        int
	startServerCmdBooksAPIURL string
	startServerCmdConfigFile  string
)

var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the booksmcp server",
	Long: "Starts the booksmcp HTTP server, which exposes the Books API as tools.\n\n" +
		"Tools are served over a plain HTTP API (GET /tools, POST /tool-calls) and over the\n" +
		"Model Context Protocol at /mcp.\n\n" +
		"The server is configured with environment variables (a .env file in the current directory is also read):\n" +
		"  MCP_SERVER_HOST (default 0.0.0.0), MCP_SERVER_PORT (default 8080),\n" +
		"  BOOKS_API_URL (default http://localhost:5288), BOOKS_API_TIMEOUT_SEC (default 30),\n" +
		"  OTEL_ENABLED (true|false), LOG_LEVEL (debug|info|warn|error), LOG_FORMAT (console|json).\n" +
		"The same settings can be supplied in a YAML file with --config or BOOKSMCP_CONFIG.\n" +
		"Command line flags take precedence over environment variables, which take precedence over the file.\n",
	RunE: runStartServer,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "1",
	},
}

func init() {
	startServerCmd.Flags().StringVar(
		&startServerCmdHost,
		"host",
		"",
		fmt.Sprintf("host to bind the HTTP server to (overrides env var %s)", config.HostEnvVar),
	)
	startServerCmd.Flags().IntVar(
		&startServerCmdPort,
		"port",
		0,
		fmt.Sprintf("port to bind the HTTP server to (overrides env var %s)", config.PortEnvVar),
	)
	startServerCmd.Flags().StringVar(
		&startServerCmdBooksAPIURL,
		"books-api-url",
		"",
		fmt.Sprintf("base URL of the Books API (overrides env var %s)", config.BooksAPIURLEnvVar),
	)
	startServerCmd.Flags().StringVar(
		&startServerCmdConfigFile,
		"config",
		"",
		fmt.Sprintf("path to a YAML config file (overrides env var %s)", config.ConfigFileEnvVar),
	)

	rootCmd.AddCommand(startServerCmd)
}

// getConfigFilePath returns the config file to load, if any.
// precedence: command line flag > environment variable
func getConfigFilePath() string {
	if startServerCmdConfigFile != "" {
		return startServerCmdConfigFile
	}
	return os.Getenv(config.ConfigFileEnvVar)
}

// loadServerConfig resolves the server configuration and applies the command line flags on top of it.
func loadServerConfig(fs afero.Fs) (*config.Config, error) {
	c, err := config.Load(fs, getConfigFilePath())
	if err != nil {
		return nil, err
	}

	if startServerCmdHost != "" {
		c.Host = startServerCmdHost
	}
	if startServerCmdPort != 0 {
		c.Port = startServerCmdPort
	}
	if startServerCmdBooksAPIURL != "" {
		c.BooksAPI.URL = startServerCmdBooksAPIURL
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// newServer wires the Books API client, the tool registry and both transports into an API server.
func newServer(c *config.Config, otelProviders *telemetry.Providers, l *zap.Logger) (*api.Server, error) {
	// By default, a no-op metrics implementation is used, assuming metrics are disabled.
	// If metrics are enabled, then create the real metrics implementation.
	metrics := telemetry.NewNoopCustomMetrics()
	if otelProviders.IsEnabled() {
		var err error
		metrics, err = telemetry.NewOtelCustomMetrics(otelProviders.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create tool call metrics: %w", err)
		}
	}

	booksClient := books.NewClient(
		c.BooksAPI.URL,
		&http.Client{Timeout: c.BooksAPITimeout()},
		l.Named("books"),
	)

	registry, err := tools.NewRegistry(booksClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}
	dispatcher := tools.NewDispatcher(registry, metrics, l.Named("tools"))

	mcpServer := server.NewMCPServer(
		api.AppTitle,
		version.GetVersion(),
		server.WithToolCapabilities(false),
	)
	if err := tools.RegisterMCPTools(mcpServer, dispatcher); err != nil {
		return nil, fmt.Errorf("failed to register MCP tools: %w", err)
	}

	s, err := api.NewServer(&api.ServerOptions{
		Addr:          c.Addr(),
		Dispatcher:    dispatcher,
		MCPServer:     mcpServer,
		OtelProviders: otelProviders,
		Logger:        l.Named("http"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return s, nil
}

func runStartServer(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	c, err := loadServerConfig(afero.NewOsFs())
	if err != nil {
		return err
	}

	l, err := logger.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelProviders, err := telemetry.Init(ctx, &telemetry.Config{
		ServiceName: serviceName,
		Enabled:     c.Telemetry.Enabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Opentelemetry providers: %w", err)
	}
	defer func() {
		if err := otelProviders.Shutdown(context.Background()); err != nil {
			l.Warn("failed to shutdown opentelemetry providers", zap.Error(err))
		}
	}()

	s, err := newServer(c, otelProviders, l)
	if err != nil {
		return err
	}

	l.Info("starting booksmcp",
		zap.String("version", version.GetVersion()),
		zap.String("addr", c.Addr()),
		zap.String("books_api_url", c.BooksAPI.URL),
		zap.Bool("telemetry", otelProviders.IsEnabled()),
	)
	cmd.Printf("booksmcp server listening on %s\n\n", c.Addr())

	if err := s.Start(ctx); err != nil {
		return err
	}
	l.Info("booksmcp stopped")
	return nil
}
