package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/verity/internal/config"
	"github.com/abhisek/verity/internal/logging"
	"github.com/abhisek/verity/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Legit or fake? A terminal quiz",
	Long:  "Verity shows one statement at a time and asks whether it is legit or fake.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a verity.yaml config file")
	rootCmd.Flags().String("base-url", "", "Quiz backend URL (overrides BASE_URL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger logs to stderr, or to file when one is given.
func newLogger(cfg *config.Config, file string) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Production: cfg.IsProduction(),
		File:       file,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, nil
}

// resolveDBPath returns the database path using --db (highest priority),
// then VERITY_DB / the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.Server.DBPath
	}
	if p == "" {
		return store.DefaultDBPath()
	}
	return p, store.EnsureDir(p)
}
