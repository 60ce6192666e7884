package fs

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fallow-md/fallow/pkg/core"
)

// Transaction implements core.Transaction for the filesystem. Changes
// are staged in memory and applied with atomic per-file writes on
// Commit.
type Transaction struct {
	repo    *Repository
	staged  map[string]core.Note // ID -> Note
	deleted map[string]bool      // ID -> bool
	mu      sync.Mutex
	closed  bool
}

// NewTransaction creates a new transaction.
func NewTransaction(repo *Repository) *Transaction {
	return &Transaction{
		repo:    repo,
		staged:  make(map[string]core.Note),
		deleted: make(map[string]bool),
	}
}

// Save stages a note for persistence.
func (t *Transaction) Save(ctx context.Context, n core.Note) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}

	t.staged[n.ID] = n
	delete(t.deleted, n.ID)
	return nil
}

// Get retrieves a note, favoring staged changes.
func (t *Transaction) Get(ctx context.Context, id string) (core.Note, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return core.Note{}, fmt.Errorf("transaction closed")
	}

	if t.deleted[id] {
		return core.Note{}, os.ErrNotExist
	}

	if n, ok := t.staged[id]; ok {
		return n, nil
	}

	return t.repo.Get(ctx, id)
}

// Delete stages a note for removal.
func (t *Transaction) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}

	t.deleted[id] = true
	delete(t.staged, id)
	return nil
}

// Commit applies all staged changes.
func (t *Transaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction already closed")
	}
	if t.repo.config.ReadOnly {
		return core.ErrReadOnly
	}

	for id, n := range t.staged {
		if err := t.repo.Save(ctx, n); err != nil {
			return fmt.Errorf("failed to write note %s: %w", id, err)
		}
	}

	for id := range t.deleted {
		if err := os.Remove(t.repo.filename(id)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove note %s: %w", id, err)
		}
	}

	t.closed = true
	return nil
}

// Rollback discards all staged changes.
func (t *Transaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.staged = nil
	t.deleted = nil
	t.closed = true
	return nil
}
