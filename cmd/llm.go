package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/verity/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect explanation requests made by the backend",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().RecentLLMRequests(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}
		fmt.Fprint(out, formatEvents(events, purpose))
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Only show requests with this purpose")
	llmListCmd.Flags().String("db", "", "Path to SQLite database file (overrides VERITY_DB)")
	llmCmd.AddCommand(llmListCmd)
}

func formatEvents(events []store.LLMRequestEvent, purpose string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s  %-19s  %-10s  %-12s  %-28s  %6s  %6s  %7s  %s\n",
		"ID", "Timestamp", "Provider", "Purpose", "Model", "In", "Out", "Ms", "OK")
	b.WriteString(strings.Repeat("─", 108))
	b.WriteString("\n")

	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		ok := "✓"
		if !e.Success {
			ok = "✗ " + e.ErrorMessage
		}
		model := e.Model
		if len(model) > 28 {
			model = model[:28]
		}
		fmt.Fprintf(&b, "%-5d  %-19s  %-10s  %-12s  %-28s  %6d  %6d  %7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Provider,
			e.Purpose,
			model,
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
	return b.String()
}
