package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skillpath/skillpath/internal/config"
	"github.com/skillpath/skillpath/internal/signal"
	"github.com/skillpath/skillpath/internal/ui"
)

// Version is set at build time.
var Version = "dev"

var (
	configPath string
	verbose    bool

	logger    = zap.NewNop()
	appConfig *config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "AI career advisor, tutor and learning roadmaps",
	Long: `skillpath helps students plan a career with Gemini.

Examples:
  skillpath advise                      # fill in a profile, get career paths
  skillpath tutor                       # chat with the AI tutor
  skillpath roadmap show "Data Scientist"
  skillpath roadmap generate "Rust"
  skillpath serve                       # web UI on http://127.0.0.1:8080`,
	Version:           Version,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appConfig, configErr = config.Load(configPath)

		level := zapcore.WarnLevel
		if appConfig != nil {
			if l, err := zapcore.ParseLevel(appConfig.LogLevel); err == nil {
				level = l
			}
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		var err error
		logger, err = newLogger(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/skillpath/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger builds a production zap logger that writes console-encoded
// entries to stderr.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// loadConfig returns the config read by the root command, validated, and
// applies its theme.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg := appConfig
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ui.InitTheme(ui.ThemeConfig{
		Preset:    cfg.Theme.Preset,
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Success:   cfg.Theme.Success,
		Error:     cfg.Theme.Error,
		Warning:   cfg.Theme.Warning,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
		Spinner:   cfg.Theme.Spinner,
	})
	return cfg, nil
}
