package fallow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	adapterfs "github.com/fallow-md/fallow/pkg/adapters/fs"
	"github.com/fallow-md/fallow/pkg/core"
	"github.com/fallow-md/fallow/pkg/schedule"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// Service bundles the scheduler with its vault repository.
type Service struct {
	*schedule.Scheduler
	Repo *adapterfs.Repository
}

// Watch exposes vault change events (see core.Watchable).
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return s.Repo.Watch(ctx, pattern)
}

// New creates a fallow Service rooted at the given vault path.
//
// The vault's settings live in .fallow/settings.yml. With WithAutoInit
// the vault directory and default settings are created when missing;
// otherwise a missing or uninitialized vault is an error.
func New(path string, opts ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo := adapterfs.NewRepository(adapterfs.Config{
		Path:      path,
		AutoInit:  o.autoInit,
		MustExist: o.mustExist || !o.autoInit,
		Ignore:    o.ignore,
		Logger:    o.logger,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	settings, err := schedule.LoadSettings(repo.SettingsPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if !o.autoInit {
			return nil, fmt.Errorf("vault is not initialized (missing %s): run 'fallow init'", repo.SettingsPath())
		}
		settings = schedule.DefaultSettings()
		settings.SetPath(repo.SettingsPath())
		if err := settings.Save(); err != nil {
			return nil, err
		}
	}

	var store core.Store = repo
	if o.store != nil {
		store = o.store
	}

	scheduler, err := schedule.NewScheduler(schedule.Config{
		Store:      store,
		Settings:   settings,
		Prompter:   o.prompter,
		Notifier:   o.notifier,
		Algorithms: o.algorithms,
		Logger:     o.logger,
		Now:        o.now,
	})
	if err != nil {
		return nil, err
	}

	return &Service{Scheduler: scheduler, Repo: repo}, nil
}
