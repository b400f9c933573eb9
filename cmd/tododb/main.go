package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/kavia-common/simple-todo-list-286515-286526/internal/bootstrap"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/config"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/store"
)

var version = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}

// Exit codes for fatal errors, by failure category.
const (
	exitConfig   = 1
	exitStore    = 2
	exitSchema   = 3
	exitInput    = 4
	exitNotReady = 5
)

var (
	configPath string
	envFile    string
	dataDir    string
	dbFile     string
	schemaFile string
	marker     string
	seedData   bool
	execSQL    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tododb",
		Short:         "Todo database bootstrap and admin CLI",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "optional dotenv file loaded before env resolution")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default /data)")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", "", "database file path (default <data-dir>/todos.db)")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "schema asset file (default: embedded schema)")
	rootCmd.PersistentFlags().StringVar(&marker, "marker", "", "structure probed for readiness (default: derived from schema)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the datastore and apply the schema if absent",
		RunE:  runInit,
	}
	initCmd.Flags().BoolVar(&seedData, "seed", false, "seed sample todos and app metadata after readiness")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Probe datastore state without mutating it",
		RunE:  runVerify,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print a JSON summary of the datastore",
		RunE:  runStatus,
	}

	execCmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a single SQL statement against the datastore",
		RunE:  runExec,
	}
	execCmd.Flags().StringVarP(&execSQL, "command", "c", "", "SQL statement to execute (single statement)")
	execCmd.MarkFlagRequired("command")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Liveness probe: store file exists and answers a trivial query",
		RunE:  runHealth,
	}

	runCmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Ensure the datastore is ready, then hand off to a downstream command",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}

	rootCmd.AddCommand(initCmd, verifyCmd, statusCmd, execCmd, healthCmd, runCmd)

	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

// resolveConfig merges file/env config with any explicitly set flags.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
		// Rederive the db path only when it was itself derived; an explicit
		// DB_FILE from the environment keeps its priority.
		if dbFile == "" && !cfg.DBFileExplicit() {
			cfg.DBFile = store.DBPath(dataDir)
		}
	}
	if dbFile != "" {
		cfg.DBFile = dbFile
	}
	if schemaFile != "" {
		cfg.SchemaFile = schemaFile
	}
	if marker != "" {
		cfg.Marker = marker
	}
	return cfg, nil
}

// fatal prints a colored error and exits with a code matching the failure
// category. The process never reaches a downstream handoff after this.
func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, err)

	code := exitConfig
	var berr *bootstrap.Error
	switch {
	case errors.As(err, &berr):
		switch berr.Kind {
		case bootstrap.KindDirectoryCreation, bootstrap.KindStoreCreation:
			code = exitStore
		case bootstrap.KindSchemaApplication:
			code = exitSchema
		}
	case errors.Is(err, errNotReady):
		code = exitNotReady
	case errors.Is(err, errBadInput):
		code = exitInput
	}
	os.Exit(code)
}

var (
	errNotReady = errors.New("datastore is not ready")
	errBadInput = errors.New("invalid input")
)
