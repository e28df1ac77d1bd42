package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/verity/internal/bank"
	"github.com/abhisek/verity/internal/quiz"
	"github.com/abhisek/verity/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append questions from a YAML or JSON file to the question bank",
	Long: `Append questions from a YAML or JSON file to the question bank.

The file holds a list of questions, either at the top level or under a
"questions" key:

  - question: Honey never spoils.
    answer: real
  - question: Goldfish forget everything after three seconds.
    answer: fake
    reason: They remember for months.

Questions go to MongoDB when MONGO_URL is set, otherwise to SQLite.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		questions, err := parseQuestions(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var target bank.Bank
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
			target = mb
		} else {
			dbPath, err := resolveDBPath(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()
			target = st.Questions()
		}

		if err := target.Add(ctx, questions); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		total, err := target.Count(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions (%d in bank).\n", len(questions), total)
		return nil
	},
}

func init() {
	importCmd.Flags().String("db", "", "Path to SQLite database file (overrides VERITY_DB)")
}

type importEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
	Reason   string `yaml:"reason" json:"reason"`
}

type importFile struct {
	Questions []importEntry `yaml:"questions" json:"questions"`
}

// decodeEntries accepts a bare list or a {questions: [...]} document.
// JSON is decoded as JSON since YAML rejects tab-indented JSON.
func decodeEntries(data []byte) ([]importEntry, error) {
	unmarshal := yaml.Unmarshal
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		unmarshal = json.Unmarshal
	}

	var entries []importEntry
	err := unmarshal(data, &entries)
	if err == nil {
		return entries, nil
	}
	var doc importFile
	if err2 := unmarshal(data, &doc); err2 != nil {
		return nil, err
	}
	return doc.Questions, nil
}

// parseQuestions reads a YAML or JSON question list and validates every
// entry. Nothing is returned unless all entries are valid.
func parseQuestions(data []byte) ([]quiz.Question, error) {
	entries, err := decodeEntries(data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("no questions found")
	}

	out := make([]quiz.Question, 0, len(entries))
	var errs []error
	for i, e := range entries {
		q, err := bank.Prepare(quiz.Question{Text: e.Question, Answer: e.Answer, Reason: e.Reason})
		if err != nil {
			errs = append(errs, fmt.Errorf("question %d: %w", i+1, err))
			continue
		}
		out = append(out, q)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
