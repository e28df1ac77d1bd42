package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/verity/internal/app"
	"github.com/abhisek/verity/internal/logging"
	"github.com/abhisek/verity/internal/source"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("base-url", "", "Quiz backend URL (overrides BASE_URL)")
}

// runPlay launches the TUI against the configured backend.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if u, _ := cmd.Flags().GetString("base-url"); u != "" {
		cfg.BaseURL = u
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		if logFile, err = logging.DefaultFile(); err != nil {
			return fmt.Errorf("resolve log file: %w", err)
		}
	}
	logger, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := source.NewClient(cfg.BaseURL, source.WithTimeout(cfg.FetchTimeout))
	logger.Info("starting quiz",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("fetch_timeout", cfg.FetchTimeout))

	return app.Run(app.Options{
		Source:  client,
		BaseURL: client.BaseURL(),
		Logger:  logger,
	})
}
