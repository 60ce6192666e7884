package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the scheduler independent of the
// underlying storage mechanism (Filesystem, SQL, S3, etc).
type Repository interface {
	// Save persists a note. It creates if not exists, or updates if it does.
	Save(ctx context.Context, n Note) error

	// Get retrieves a note by its ID.
	Get(ctx context.Context, id string) (Note, error)

	// List returns all available notes.
	List(ctx context.Context) ([]Note, error)

	// Delete removes a note by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// FieldWriter is the mutation surface the scheduler depends on.
// Apply performs all pending field changes for one note as a single
// atomic write: a nil value in changes means "delete this field".
// Partial application is never visible, even if the write fails midway.
type FieldWriter interface {
	Apply(ctx context.Context, id string, changes map[string]any) error
}

// Store is what the scheduling layer consumes: note reads plus batched
// metadata mutation.
type Store interface {
	Get(ctx context.Context, id string) (Note, error)
	List(ctx context.Context) ([]Note, error)
	FieldWriter
}

// Transaction defines the contract for a unit of work.
// Changes made within a transaction are atomic once committed.
type Transaction interface {
	// Save stages a note for persistence.
	Save(ctx context.Context, n Note) error

	// Get retrieves a note, preferring the staged version if it exists.
	Get(ctx context.Context, id string) (Note, error)

	// Delete stages a note for removal.
	Delete(ctx context.Context, id string) error

	// Commit applies all staged changes atomically.
	Commit(ctx context.Context) error

	// Rollback discards all staged changes.
	Rollback(ctx context.Context) error
}

// TransactionalRepository extends Repository to support transactions.
type TransactionalRepository interface {
	Repository

	// Begin starts a new transaction.
	Begin(ctx context.Context) (Transaction, error)
}

// Watchable defines an interface for repositories that can report
// external changes to the note corpus.
type Watchable interface {
	// Watch emits events for notes matching pattern until ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
