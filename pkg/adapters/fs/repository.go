package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/fallow-md/fallow/pkg/core"
)

// DefaultSystemDir is the hidden directory holding fallow's own files
// (settings, locks). It is excluded from note scans.
const DefaultSystemDir = ".fallow"

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	AutoInit  bool
	MustExist bool
	SystemDir string // e.g. ".fallow"; empty means DefaultSystemDir
	// Ignore lists doublestar globs (relative to the vault root) for
	// files excluded from scans, e.g. "templates/**".
	Ignore []string
	Logger *slog.Logger
	// ErrorHandler receives watcher errors; nil means log only.
	ErrorHandler func(error)
	ReadOnly     bool
}

// Repository implements core.Repository over a directory of Markdown
// files with YAML frontmatter. One note is one file; the note ID is the
// slash-separated path relative to the vault root without extension.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	watcherActive bool
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: NewMarkdownSerializer(),
	}
}

// SettingsPath returns the path of the settings file inside the vault's
// system directory.
func (r *Repository) SettingsPath() string {
	return filepath.Join(r.Path, r.config.SystemDir, "settings.yml")
}

// Initialize ensures the vault directory is ready.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
		return nil
	}
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// Begin starts a new transaction.
func (r *Repository) Begin(ctx context.Context) (core.Transaction, error) {
	return NewTransaction(r), nil
}

func (r *Repository) filename(id string) string {
	return filepath.Join(r.Path, id+".md")
}

// Get retrieves a note from the filesystem.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	f, err := os.Open(r.filename(id))
	if err != nil {
		if os.IsNotExist(err) {
			return core.Note{}, fmt.Errorf("%s: %w", id, core.ErrNotFound)
		}
		return core.Note{}, err
	}
	defer f.Close()

	n, err := r.serializer.Parse(f)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to parse note %s: %w", id, err)
	}
	n.ID = id
	return *n, nil
}

// List returns all notes in the vault. It scans recursively for .md
// files, skipping the system directory and ignore globs. Notes that
// fail to parse are skipped with a warning rather than failing the scan.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note

	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == r.config.SystemDir || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != ".md" {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if r.ignored(relPath) {
			return nil
		}

		id := strings.TrimSuffix(relPath, ".md")
		n, err := r.Get(ctx, id)
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to parse note during list", "id", id, "error", err)
			}
			return nil // Continue walking
		}
		notes = append(notes, n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault dir: %w", err)
	}

	return notes, nil
}

// ignored reports whether a vault-relative path matches an ignore glob.
func (r *Repository) ignored(relPath string) bool {
	for _, pattern := range r.config.Ignore {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// Save persists a note to disk atomically.
func (r *Repository) Save(ctx context.Context, n core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if n.ID == "" {
		return fmt.Errorf("note has no ID")
	}

	fullPath := r.filename(n.ID)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := r.serializer.Serialize(n)
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("writing note to disk", "id", n.ID, "path", fullPath)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Delete removes a note file.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	fullPath := r.filename(id)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, core.ErrNotFound)
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Apply performs a batched metadata mutation on one note as a single
// atomic write. A nil value in changes deletes the field. The whole
// change set goes through one transaction commit, so a failure midway
// never leaves the note with part of the mutation applied.
func (r *Repository) Apply(ctx context.Context, id string, changes map[string]any) error {
	tx := NewTransaction(r)

	n, err := tx.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := n.Clone()
	for key, value := range changes {
		if value == nil {
			delete(updated.Metadata, key)
		} else {
			updated.Metadata[key] = value
		}
	}

	if err := tx.Save(ctx, updated); err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// --- watching support ---

// Watch emits change events for the vault until ctx is cancelled.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

// recursiveAdd registers the vault directory tree with the watcher.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == r.config.SystemDir || d.Name() == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters watcher events down to note files matching the
// watch pattern and not excluded by ignore globs.
func (r *Repository) shouldIgnore(event fsnotify.Event, pattern string) bool {
	if filepath.Ext(event.Name) != ".md" {
		return true
	}
	relPath, err := filepath.Rel(r.Path, event.Name)
	if err != nil {
		return true
	}
	relPath = filepath.ToSlash(relPath)
	if strings.HasPrefix(relPath, r.config.SystemDir+"/") {
		return true
	}
	if r.ignored(relPath) {
		return true
	}
	if pattern != "" {
		if ok, err := doublestar.Match(pattern, relPath); err != nil || !ok {
			return true
		}
	}
	return false
}

// mapEventType maps fsnotify operations onto vault event types.
func (r *Repository) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// resolveID converts an absolute file path into a note ID.
func (r *Repository) resolveID(path string) (string, error) {
	relPath, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", err
	}
	relPath = filepath.ToSlash(relPath)
	return strings.TrimSuffix(relPath, ".md"), nil
}
