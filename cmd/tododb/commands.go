package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kavia-common/simple-todo-list-286515-286526/internal/bootstrap"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/logger"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/store"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/store/sqlite"
)

// ensureReady resolves config, runs the bootstrapper and returns the open
// store. The caller owns Close.
func ensureReady(log logger.Logger) (*sqlite.SQLiteStore, *bootstrap.Status, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, err
	}

	st := sqlite.New(cfg.DBFile)
	status, err := bootstrap.EnsureReady(st, bootstrap.Request{
		DBPath:     cfg.DBFile,
		SchemaPath: cfg.SchemaFile,
		Marker:     cfg.Marker,
		Log:        log,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, status, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	log := logger.Default

	st, status, err := ensureReady(log)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info("datastore ready",
		"created_new", status.CreatedNew,
		"applied_schema", status.AppliedSchema,
		"used_fallback_schema", status.UsedFallbackSchema,
		"marker", status.Marker,
	)

	if seedData {
		inserted, err := st.Seed()
		if err != nil {
			return fmt.Errorf("seeding sample data: %w", err)
		}
		log.Info("seed complete", "todos_inserted", inserted)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	state, err := bootstrap.State(sqlite.New(cfg.DBFile), cfg.DBFile, cfg.Marker)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", cfg.DBFile, state)
	if state != store.StateReady {
		return fmt.Errorf("%w: state is %s", errNotReady, state)
	}
	return nil
}

type statusReport struct {
	Path        string       `json:"path"`
	State       string       `json:"state"`
	Size        string       `json:"size,omitempty"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Structures  []string     `json:"structures,omitempty"`
	Stats       sqlite.Stats `json:"stats"`
	Version     string       `json:"version"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	report := statusReport{Path: cfg.DBFile, Version: version.String()}

	state, err := bootstrap.State(sqlite.New(cfg.DBFile), cfg.DBFile, cfg.Marker)
	if err != nil {
		return err
	}
	report.State = state.String()

	if state != store.StateMissing {
		if info, err := os.Stat(cfg.DBFile); err == nil {
			report.Size = humanize.Bytes(uint64(info.Size()))
		}

		st := sqlite.New(cfg.DBFile)
		if err := st.Open(); err != nil {
			return err
		}
		defer st.Close()

		if report.Fingerprint, err = st.Fingerprint(); err != nil {
			return err
		}
		if report.Structures, err = st.Structures(); err != nil {
			return err
		}
		if report.Stats, err = st.CollectStats(); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func runExec(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(execSQL) == "" {
		return fmt.Errorf("%w: empty SQL statement", errBadInput)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	// The db file may live outside the data dir; its own parent is what
	// must exist before opening.
	if err := store.EnsureDir(filepath.Dir(cfg.DBFile)); err != nil {
		return err
	}

	st := sqlite.New(cfg.DBFile)
	if err := st.Open(); err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.ExecStatement(execSQL)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	exists, err := store.CheckExists(cfg.DBFile)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: store file missing at %s", errNotReady, cfg.DBFile)
	}

	st := sqlite.New(cfg.DBFile)
	if err := st.Open(); err != nil {
		return fmt.Errorf("%w: %v", errNotReady, err)
	}
	defer st.Close()

	if err := st.Ping(); err != nil {
		return fmt.Errorf("%w: %v", errNotReady, err)
	}
	fmt.Println("ok")
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logger.Default

	st, _, err := ensureReady(log)
	if err != nil {
		// A fatal bootstrap error must never be followed by the handoff.
		return err
	}
	// The downstream process owns the store from here.
	if err := st.Close(); err != nil {
		return err
	}

	log.Info("handing off", "command", strings.Join(args, " "))

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.Env = os.Environ()

	if err := child.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			os.Exit(ee.ExitCode())
		}
		return fmt.Errorf("downstream command failed: %w", err)
	}
	return nil
}
