package fallow

import (
	"log/slog"
	"time"

	"github.com/fallow-md/fallow/pkg/core"
	"github.com/fallow-md/fallow/pkg/schedule"
)

// options holds the internal configuration for the fallow service.
type options struct {
	autoInit   bool
	mustExist  bool
	ignore     []string
	logger     *slog.Logger
	prompter   schedule.Prompter
	notifier   schedule.Notifier
	algorithms schedule.Algorithms
	store      core.Store
	now        func() time.Time
}

// Option defines a functional option for configuring fallow.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithAutoInit enables automatic initialization of the vault (creates
// the directory and default settings).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithIgnore sets doublestar globs for files excluded from note scans.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = patterns
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPrompter sets the user-interaction surface for onboarding and reviews.
func WithPrompter(p schedule.Prompter) Option {
	return func(o *options) {
		o.prompter = p
	}
}

// WithNotifier sets the destination for outcome messages.
func WithNotifier(n schedule.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithAlgorithms replaces the algorithm registry, e.g. to plug a custom
// strategy behind the "Custom" algorithm selector.
func WithAlgorithms(a schedule.Algorithms) Option {
	return func(o *options) {
		o.algorithms = a
	}
}

// WithStore allows injecting a custom note store (e.g. a mock).
// If provided, the default filesystem adapter is still created for
// vault-level operations but all scheduling reads/writes go to the store.
func WithStore(s core.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithClock overrides the scheduler's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
