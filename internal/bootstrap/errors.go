package bootstrap

import "fmt"

// Kind classifies fatal bootstrap failures.
type Kind int

const (
	// KindDirectoryCreation means the data directory could not be created.
	KindDirectoryCreation Kind = iota + 1

	// KindStoreCreation means the store could not be created or opened.
	KindStoreCreation

	// KindSchemaApplication means a genuine schema apply attempt failed, or
	// the marker structure was still absent after applying the definition.
	KindSchemaApplication
)

func (k Kind) String() string {
	switch k {
	case KindDirectoryCreation:
		return "directory-creation"
	case KindStoreCreation:
		return "store-creation"
	case KindSchemaApplication:
		return "schema-application"
	default:
		return "unknown"
	}
}

// Error is a fatal bootstrap failure carrying its classification and the
// underlying cause. Non-fatal conditions (a missing schema asset) never
// produce an Error; they surface as Status flags instead.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bootstrap %s failed: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}
