package cmd

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/intake/internal/quiz"
	"github.com/abhisek/intake/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how recorded sessions answered",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.StatsRepo()

		started, err := repo.SessionCount(ctx, store.ActionStart)
		if err != nil {
			return err
		}
		completed, err := repo.SessionCount(ctx, store.ActionComplete)
		if err != nil {
			return err
		}
		last, err := repo.LastActivity(ctx)
		if err != nil {
			return err
		}
		counts, err := repo.OptionCounts(ctx)
		if err != nil {
			return err
		}

		// Prompts are looked up in the current catalog; keys it no longer
		// has are shown bare.
		catalog, err := loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sessions started:   %d\n", started)
		fmt.Fprintf(out, "Sessions completed: %d\n", completed)
		fmt.Fprintf(out, "Last activity:      %s\n", formatTime(last))
		writeOptionCounts(out, counts, catalog)
		return nil
	},
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// writeOptionCounts prints one block per answer key, in catalog order. Keys
// the catalog no longer has follow, ordered by question id.
func writeOptionCounts(w io.Writer, counts []store.OptionCount, catalog *quiz.Catalog) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "\nNo answers recorded yet.")
		return
	}

	byKey := make(map[string][]store.OptionCount)
	var retired []string
	for _, c := range counts {
		if _, ok := byKey[c.Key]; !ok {
			if _, known := catalog.PromptFor(c.Key); !known {
				retired = append(retired, c.Key)
			}
		}
		byKey[c.Key] = append(byKey[c.Key], c)
	}
	slices.SortFunc(retired, compareKeys)

	for _, key := range append(catalog.Keys(), retired...) {
		rows, ok := byKey[key]
		if !ok {
			continue
		}
		heading := key
		if prompt, ok := catalog.PromptFor(key); ok {
			heading = fmt.Sprintf("%s  %s", key, prompt)
		}
		fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Repeat("─", 60))
		for _, c := range rows {
			fmt.Fprintf(w, "  %-40s %5d\n", c.Option, c.Count)
		}
	}
}

// compareKeys orders answer keys by their numeric question id, then by the
// sub-question suffix. Keys without a numeric id sort last.
func compareKeys(a, b string) int {
	aID, aSub, _ := strings.Cut(a, "_")
	bID, bSub, _ := strings.Cut(b, "_")
	an, aErr := strconv.Atoi(aID)
	bn, bErr := strconv.Atoi(bID)
	switch {
	case aErr != nil && bErr != nil:
		return strings.Compare(a, b)
	case aErr != nil:
		return 1
	case bErr != nil:
		return -1
	case an != bn:
		return cmp.Compare(an, bn)
	}
	return strings.Compare(aSub, bSub)
}
