package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kk-code-lab/codenav/internal/app"
	"github.com/kk-code-lab/codenav/internal/backend"
	"github.com/kk-code-lab/codenav/internal/config"
	"github.com/kk-code-lab/codenav/internal/logger"
)

type rootFlags struct {
	backendURL string
	configPath string
	envFile    string
	logFile    string
	debug      bool
}

var (
	flags                  rootFlags
	buildVersion           = "dev"
	buildCommit, buildDate string
)

// SetVersionInfo sets version information from ldflags.
func SetVersionInfo(v, c, d string) {
	buildVersion, buildCommit, buildDate = v, c, d
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codenav",
		Short: "Terminal client for browsing and querying a code repository",
		Long: `codenav browses a repository served by a code-navigation backend.
Search file names or contents, jump to symbol definitions and ask questions
about the selected file without leaving the terminal.`,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.backendURL, "backend", "", "backend base URL (overrides config)")
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file with CODENAV_* settings (default .env)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path (overrides config)")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.Version = buildVersion
	cmd.SetVersionTemplate(versionTemplate())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionTemplate())
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func versionTemplate() string {
	if buildCommit != "none" && buildCommit != "" {
		return fmt.Sprintf("codenav %s\n  commit: %s\n  built:  %s\n", buildVersion, buildCommit, buildDate)
	}
	return fmt.Sprintf("codenav %s\n", buildVersion)
}

// loadConfig applies command-line overrides on top of the file and
// environment settings.
func loadConfig(cmd *cobra.Command, f rootFlags) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: f.configPath, EnvFile: f.envFile})
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cmd.Flags().Changed("backend") {
		cfg.BackendURL = f.backendURL
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Path: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("error opening log: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("version", buildVersion), zap.String("backend", cfg.BackendURL))

	client, err := backend.New(backend.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.Timeout(),
		Logger:  log.Named("backend"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// UTF-8 fallback keeps non-ASCII file names readable on terminals
	// without a declared charset.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	application, err := app.NewApplication(ctx, app.Options{
		Backend:         client,
		Logger:          log,
		StartupTimeout:  cfg.Timeout(),
		ContentCacheTTL: cfg.CacheTTL(),
		TabWidth:        cfg.TabWidth,
	})
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer func() { _ = application.Close() }()

	application.Run(ctx)
	log.Info("exiting")
	return nil
}
