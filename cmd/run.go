package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/intake/internal/app"
	"github.com/abhisek/intake/internal/logging"
	"github.com/abhisek/intake/internal/quiz"
	"github.com/abhisek/intake/internal/store"
)

// runApp loads the catalog, opens the event log and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, closer := logging.New(cfg.Logging)
	defer func() { _ = closer.Close() }()

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	nav, err := quiz.New(catalog)
	if err != nil {
		return err
	}

	opts := app.Options{
		Navigator:    nav,
		AdvanceDelay: cfg.AdvanceDelay,
		Logger:       logger,
		SkipIntro:    cfg.SkipIntro,
	}

	if !cfg.NoRecord {
		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		opts.EventRepo = st.EventRepo()
		logger.Info("event log opened", slog.String("path", dbPath))
	}

	res, err := app.Run(opts)
	if err != nil {
		return err
	}
	printRecap(cmd.OutOrStdout(), res)
	return nil
}

// loadCatalog reads the catalog at path, or the embedded one when path is
// empty.
func loadCatalog(path string) (*quiz.Catalog, error) {
	if path == "" {
		return quiz.DefaultCatalog()
	}
	return quiz.LoadCatalog(path)
}

func printRecap(w io.Writer, res *app.Result) {
	if !res.Completed {
		fmt.Fprintln(w, "Questionnaire not finished.")
		return
	}
	fmt.Fprintln(w, "Thanks! Your answers:")
	for _, line := range res.Recap {
		fmt.Fprintf(w, "  %-50s %s\n", line.Prompt, line.Answer)
	}
}
