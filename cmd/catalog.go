package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/intake/internal/quiz"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file (defaults to the configured catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalogFromArgs(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %q, %d questions, %d answer keys\n",
			c.Title, c.Len(), len(c.Keys()))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a catalog as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalogFromArgs(args)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func catalogFromArgs(args []string) (*quiz.Catalog, error) {
	if len(args) == 1 {
		return quiz.LoadCatalog(args[0])
	}
	return loadCatalog(cfg.Catalog)
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}
