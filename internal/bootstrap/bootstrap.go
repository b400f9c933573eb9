// Package bootstrap guarantees a todo-db store is ready: data directory
// present, database file present, schema applied. EnsureReady is idempotent
// and tolerates concurrent invocations at the filesystem level; concurrent
// schema application is serialized by the store engine's own locking.
package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/kavia-common/simple-todo-list-286515-286526/internal/logger"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/schema"
	"github.com/kavia-common/simple-todo-list-286515-286526/internal/store"
)

// Request configures a bootstrap run.
type Request struct {
	// DBPath is the store file location. Its containing directory is
	// created if absent.
	DBPath string

	// SchemaPath selects a schema asset file. Empty means the embedded
	// default definition. A missing or unreadable asset is non-fatal: the
	// built-in minimal fallback is applied instead.
	SchemaPath string

	// Marker is the structure probed to decide whether initialization
	// already happened. Empty means derive it from the schema definition.
	Marker string

	// Log receives progress and warnings. Nil uses logger.Default.
	Log logger.Logger
}

// Status reports the outcome of EnsureReady.
type Status struct {
	// Ready is true when the store exists and contains the marker structure.
	Ready bool

	// CreatedNew is true when the store file did not exist before this run.
	CreatedNew bool

	// AppliedSchema is true when this run applied the schema definition.
	AppliedSchema bool

	// UsedFallbackSchema is true when the requested schema asset was
	// missing and the built-in minimal definition was applied instead.
	UsedFallbackSchema bool

	// Marker is the structure name that was probed.
	Marker string
}

// EnsureReady drives the store from any state to READY:
//
//	missing -> structure-missing -> ready
//
// The store must not be open yet: EnsureReady opens it (creating the file if
// needed) and leaves it open for the caller to use and close. Re-running
// against a ready store changes nothing and reports success.
func EnsureReady(st store.Store, req Request) (*Status, error) {
	log := req.Log
	if log == nil {
		log = logger.Default
	}

	dir := filepath.Dir(req.DBPath)
	if err := store.EnsureDir(dir); err != nil {
		return nil, fail(KindDirectoryCreation, err)
	}

	existed, err := store.CheckExists(req.DBPath)
	if err != nil {
		return nil, fail(KindStoreCreation, err)
	}
	if !existed {
		log.Info("creating new store", "path", req.DBPath)
	}

	status := &Status{CreatedNew: !existed}

	// Resolve the definition up front: marker derivation needs it even when
	// the store turns out to be ready already.
	usedFallback := false
	script, err := schema.Load(req.SchemaPath)
	if err != nil {
		script = schema.Fallback
		usedFallback = true
	}
	stmts := schema.Split(script)

	status.Marker = req.Marker
	if status.Marker == "" {
		status.Marker = schema.Marker(stmts)
	}

	if err := st.Open(); err != nil {
		return nil, fail(KindStoreCreation, err)
	}

	exists, err := st.StructureExists(status.Marker)
	if err != nil {
		return nil, fail(KindStoreCreation, err)
	}

	if !exists {
		if usedFallback {
			log.Warn("schema asset unavailable, applying built-in fallback", "path", req.SchemaPath)
		}
		log.Info("applying schema", "statements", len(stmts), "marker", status.Marker)
		if err := st.Apply(stmts); err != nil {
			return nil, fail(KindSchemaApplication, err)
		}
		status.AppliedSchema = true
		status.UsedFallbackSchema = usedFallback

		// The apply already happened; a failing re-probe is a
		// schema-application failure, not a store one.
		exists, err = st.StructureExists(status.Marker)
		if err != nil {
			return nil, fail(KindSchemaApplication, err)
		}
		if !exists {
			return nil, fail(KindSchemaApplication,
				fmt.Errorf("structure %q still missing after applying schema definition", status.Marker))
		}
	}

	status.Ready = true
	return status, nil
}

// State probes the current store state without mutating anything. The store
// must not be open yet; the probe opens it read-style and closes it again.
// A marker of "" probes for the default schema's marker.
func State(st store.Store, dbPath, marker string) (store.StoreState, error) {
	exists, err := store.CheckExists(dbPath)
	if err != nil {
		return store.StateMissing, err
	}
	if !exists {
		return store.StateMissing, nil
	}

	if marker == "" {
		marker = schema.DefaultMarker
	}

	if err := st.Open(); err != nil {
		return store.StateStructureMissing, err
	}
	defer st.Close()

	ready, err := st.StructureExists(marker)
	if err != nil {
		return store.StateStructureMissing, err
	}
	if !ready {
		return store.StateStructureMissing, nil
	}
	return store.StateReady, nil
}
