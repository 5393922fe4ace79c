package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/intake/internal/config"
	"github.com/abhisek/intake/internal/store"
)

// cfg is resolved once per invocation in loadConfig.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Onboarding questionnaire for the terminal",
	Long:  "Intake walks a respondent through a short personal-information questionnaire, one step at a time.",

	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to YAML config file (overrides INTAKE_CONFIG env var)")
	pf.String("db", "", "Path to SQLite event log (overrides INTAKE_DB env var)")
	pf.String("catalog", "", "Path to a YAML question catalog (overrides INTAKE_CATALOG env var)")

	f := rootCmd.Flags()
	f.Bool("no-record", false, "Do not write the event log")
	f.Duration("delay", config.DefaultAdvanceDelay, "How long a chosen option stays highlighted before moving on")
	f.Bool("skip-intro", false, "Start on the first question")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig layers .env, the config file, environment variables and flags,
// each overriding the one before.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}

	cfg, err = config.Load(path, dataDir)
	if err != nil {
		return err
	}

	if v, ok := stringFlag(cmd, "db"); ok {
		cfg.DB = v
	}
	if v, ok := stringFlag(cmd, "catalog"); ok {
		cfg.Catalog = v
	}
	if f := cmd.Flags().Lookup("no-record"); f != nil && f.Changed {
		cfg.NoRecord, _ = cmd.Flags().GetBool("no-record")
	}
	if f := cmd.Flags().Lookup("skip-intro"); f != nil && f.Changed {
		cfg.SkipIntro, _ = cmd.Flags().GetBool("skip-intro")
	}
	if f := cmd.Flags().Lookup("delay"); f != nil && f.Changed {
		cfg.AdvanceDelay, _ = cmd.Flags().GetDuration("delay")
	}

	return cfg.Validate()
}

func stringFlag(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// resolveDBPath returns the configured event log path, falling back to the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
