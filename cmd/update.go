package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/intake/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update intake to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(
			selfupdate.WithSource(cfg.Update),
			selfupdate.WithTimeout(2*time.Minute),
		)
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checkOnly, _ := cmd.Flags().GetBool("check")
		if checkOnly {
			res, err := checker.Check(ctx, version)
			if errors.Is(err, selfupdate.ErrDevBuild) {
				fmt.Fprintln(out, "Development build; no release to compare against.")
				return nil
			}
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				fmt.Fprintf(out, "Update available: %s -> %s\n%s\n", res.Current, res.Latest.Tag, res.Latest.URL)
			} else {
				fmt.Fprintln(out, "Already running the latest version.")
			}
			return nil
		}

		target, _ := cmd.Flags().GetString("version")
		_, err := checker.Update(ctx, version, target, func(p selfupdate.Progress) {
			fmt.Fprintln(out, p.Message)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		case errors.Is(err, fs.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo %s update", err, checker.Source().Binary)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
