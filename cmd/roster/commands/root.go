package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/roster/internal/adapter"
	"github.com/mmcdole/roster/internal/gorest"
	"github.com/mmcdole/roster/internal/transport"
	"github.com/mmcdole/roster/internal/tui"
	"github.com/mmcdole/roster/internal/userlist"
)

var (
	configFile string
	logLevel   string

	cfg    *adapter.Config
	logger *slog.Logger
)

// Execute runs the command tree
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roster",
		Short:         "Browse and manage GoREST users from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = adapter.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			logger, err = adapter.SetupLogger(&cfg.Logging)
			if err != nil {
				// Fall back to null logger if file logging fails
				logger = adapter.NullLogger()
			}
			slog.SetDefault(logger)

			transport.UserAgent = "roster/" + version
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/roster/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	root.AddCommand(listCmd(), createCmd(), deleteCmd(), versionCmd())
	return root
}

// newClient builds the GoREST client from the loaded config
func newClient() (*gorest.Client, error) {
	t, err := transport.NewHTTPTransport(cfg.Server.URL, cfg.Server.Token, cfg.HTTP.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	return gorest.NewClient(t, logger), nil
}

func runTUI(ctx context.Context) error {
	logger.Info("starting roster", "version", version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(ctx, cfg); err != nil {
			return err
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctrl := userlist.NewController(ctx, client,
		userlist.WithRetry(cfg.Retry.MaxRetries, cfg.Retry.Delay),
		userlist.WithLogger(logger),
	)
	defer ctrl.Close()

	model := tui.NewModel(ctrl, tui.Options{
		TimeFormat: cfg.UI.TimeFormat,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
