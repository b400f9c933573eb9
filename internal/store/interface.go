package store

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing          StoreState = iota // File doesn't exist
	StateStructureMissing                   // File exists but the marker structure is absent
	StateReady                              // Marker structure present
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateStructureMissing:
		return "structure-missing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Store defines the todo-db datastore adapter contract.
// Implementations must be safe for concurrent use.
type Store interface {
	// Open opens the datastore connection, creating the store if absent
	Open() error

	// Close closes the datastore connection
	Close() error

	// Ping runs a trivial query to verify the store is usable
	Ping() error

	// StructureExists reports whether a table with the given name exists
	StructureExists(name string) (bool, error)

	// Structures returns the names of all user tables in the store
	Structures() ([]string, error)

	// Apply executes a sequence of create-if-absent schema statements
	Apply(statements []string) error

	// Fingerprint returns a stable hash of the store's structural catalog
	Fingerprint() (string, error)
}
