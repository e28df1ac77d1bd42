package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/verity/internal/bank"
	"github.com/abhisek/verity/internal/explain"
	"github.com/abhisek/verity/internal/llm"
	"github.com/abhisek/verity/internal/server"
	"github.com/abhisek/verity/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logger, err := newLogger(cfg, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		// Questions come from MongoDB when configured, else from SQLite.
		// The explanation cache and request log always live in SQLite.
		var questions bank.Bank = st.Questions()
		backend := "sqlite " + dbPath
		if cfg.Mongo.URL != "" {
			mb, err := bank.OpenMongo(ctx, cfg.Mongo.URL, cfg.Mongo.Database, cfg.Mongo.Collection)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mb.Close(closeCtx)
			}()
			questions = mb
			backend = "mongodb " + cfg.Mongo.Database + "." + cfg.Mongo.Collection
		}

		var provider llm.Provider
		if cfg.LLM.Enabled() {
			provider, err = llm.NewProvider(ctx, llm.FromSettings(cfg.LLM), st.EventRepo(), logger.Named("llm"))
			if err != nil {
				logger.Warn("LLM provider not configured, explanations fall back to stored reasons", zap.Error(err))
				provider = nil
			} else {
				logger.Info("LLM provider ready",
					zap.String("provider", provider.Name()),
					zap.String("model", provider.ModelID()))
			}
		}

		n, err := questions.Count(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		logger.Info("question bank ready", zap.String("backend", backend), zap.Int("questions", n))

		srv := server.New(server.Options{
			Addr:        cfg.Server.Addr,
			Bank:        questions,
			Explainer:   explain.New(questions, st.Explanations(), provider, logger.Named("explain")),
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      logger.Named("http"),
			Production:  cfg.IsProduction(),
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides VERITY_ADDR)")
	serveCmd.Flags().String("db", "", "Path to SQLite database file (overrides VERITY_DB)")
}
