package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fallow-md/fallow/pkg/core"
)

// Prompter is the user-interaction surface the scheduler suspends on.
// The ok result is false when the user dismissed the prompt; that is a
// first-class outcome, distinct from a valid empty selection.
type Prompter interface {
	// Select asks for exactly one of the options.
	Select(title string, options []string) (choice string, ok bool, err error)

	// SelectMany asks for zero or more of the options.
	SelectMany(title string, options []string) (choices []string, ok bool, err error)
}

// Notifier receives human-readable outcome messages ("interval updated
// from X to Y", "no active contexts").
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Config assembles a Scheduler's collaborators.
type Config struct {
	Store      core.Store
	Settings   *Settings
	Prompter   Prompter
	Notifier   Notifier
	Algorithms Algorithms
	Logger     *slog.Logger
	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Scheduler orchestrates the note lifecycle: onboarding, review, and
// removal, plus due-queue lookups. All operations are short-lived and
// triggered synchronously by discrete user actions; the only
// asynchronous boundary is waiting on the prompter.
type Scheduler struct {
	store      core.Store
	settings   *Settings
	resolver   *Resolver
	queue      *QueueBuilder
	algorithms Algorithms
	prompter   Prompter
	notifier   Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewScheduler creates a Scheduler. Store and Settings are required;
// Settings must satisfy the at-least-one-method invariant.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("scheduler requires a store")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("scheduler requires settings")
	}
	if len(cfg.Settings.Methods) == 0 {
		return nil, &ConfigError{Reason: "no spacing methods registered"}
	}
	algs := cfg.Algorithms
	if algs == nil {
		algs = DefaultAlgorithms()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		store:      cfg.Store,
		settings:   cfg.Settings,
		resolver:   NewResolver(cfg.Settings),
		queue:      NewQueueBuilder(cfg.Settings, cfg.Logger),
		algorithms: algs,
		prompter:   cfg.Prompter,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		now:        now,
	}, nil
}

// Settings exposes the registries for the editing surfaces.
func (s *Scheduler) Settings() *Settings { return s.settings }

func (s *Scheduler) notify(format string, args ...any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(fmt.Sprintf(format, args...))
}

// Resolve determines the method governing a note, persisting the choice
// when it was newly inferred so resolution is stable afterwards.
func (s *Scheduler) Resolve(ctx context.Context, id string) (Resolution, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return Resolution{}, fmt.Errorf("reading note %s: %w", id, err)
	}
	return s.resolveAndPersist(ctx, n)
}

func (s *Scheduler) resolveAndPersist(ctx context.Context, n core.Note) (Resolution, error) {
	res, err := s.resolver.Resolve(n)
	if err != nil {
		return Resolution{}, err
	}
	if res.Inferred {
		changes := map[string]any{KeyMethod: res.Method.Name}
		if err := s.store.Apply(ctx, n.ID, changes); err != nil {
			return Resolution{}, fmt.Errorf("persisting resolved method for %s: %w", n.ID, err)
		}
		s.notify("%s: %s", n.ID, res.Reason)
	}
	return res, nil
}

// Onboard registers a note with the scheduler: it prompts for context
// membership and, if more than one method is registered, an explicit
// method choice, then writes the method defaults in one batch.
// Cancelling any prompt aborts with zero mutation.
func (s *Scheduler) Onboard(ctx context.Context, id string) error {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reading note %s: %w", id, err)
	}
	if IsOnboarded(n) {
		s.notify("%s is already onboarded", id)
		return nil
	}
	if s.prompter == nil {
		return fmt.Errorf("no prompter configured")
	}

	var contexts []string
	if len(s.settings.Contexts) > 0 {
		selected, ok, err := s.prompter.SelectMany(fmt.Sprintf("Contexts for %s", id), s.settings.ContextNames())
		if err != nil {
			return fmt.Errorf("prompting for contexts: %w", err)
		}
		if !ok {
			return ErrCancelled
		}
		contexts = selected
	}

	var m *Method
	if len(s.settings.Methods) > 1 {
		names := make([]string, 0, len(s.settings.Methods))
		for _, meth := range s.settings.Methods {
			names = append(names, meth.Name)
		}
		choice, ok, err := s.prompter.Select(fmt.Sprintf("Spacing method for %s", id), names)
		if err != nil {
			return fmt.Errorf("prompting for method: %w", err)
		}
		if !ok {
			return ErrCancelled
		}
		m, _ = s.settings.MethodByName(choice)
		if m == nil {
			return fmt.Errorf("selected method %q not found", choice)
		}
	} else {
		m, err = s.settings.FirstMethod()
		if err != nil {
			return err
		}
	}

	changes := map[string]any{
		KeyInterval:     m.DefaultInterval,
		KeyLastReviewed: s.now().Format(TimestampFormat),
		KeyMethod:       m.Name,
	}
	if m.DefaultEase > 0 {
		changes[KeyEase] = m.DefaultEase
	}
	if len(contexts) > 0 {
		changes[KeyContexts] = contexts
	}
	if err := s.store.Apply(ctx, id, changes); err != nil {
		return fmt.Errorf("onboarding %s: %w", id, err)
	}
	s.notify("onboarded %s with method %q (interval %v)", id, m.Name, m.DefaultInterval)
	return nil
}

// Review runs one review of a note: resolve the governing method,
// prompt for a review outcome, compute the new interval and ease, and
// persist everything as one batched mutation. A note that was never
// onboarded is onboarded instead.
func (s *Scheduler) Review(ctx context.Context, id string) error {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reading note %s: %w", id, err)
	}
	if !IsOnboarded(n) {
		s.notify("%s is not onboarded yet; onboarding first", id)
		return s.Onboard(ctx, id)
	}
	if s.prompter == nil {
		return fmt.Errorf("no prompter configured")
	}

	res, err := s.resolver.Resolve(n)
	if err != nil {
		return err
	}
	m := res.Method

	// Fail before prompting so an unimplemented algorithm or an
	// unscorable option set never leaves a partial mutation.
	alg, err := s.algorithms.For(m)
	if err != nil {
		return err
	}
	if len(m.ReviewOptions) == 0 {
		return &ConfigError{Reason: fmt.Sprintf("method %q has no review options", m.Name)}
	}

	choice, ok, err := s.prompter.Select(fmt.Sprintf("Review %s", id), m.OptionNames())
	if err != nil {
		return fmt.Errorf("prompting for review outcome: %w", err)
	}
	if !ok {
		return ErrCancelled
	}
	score, err := m.OptionScore(choice)
	if err != nil {
		return err
	}

	var prior State
	prior.Interval, _ = floatField(n.Metadata, KeyInterval)
	prior.Ease, _ = floatField(n.Metadata, KeyEase)

	next, err := alg.Next(prior, score, m)
	if err != nil {
		return fmt.Errorf("updating interval for %s: %w", id, err)
	}

	changes := map[string]any{
		KeyInterval:     next.Interval,
		KeyEase:         next.Ease,
		KeyLastReviewed: s.now().Format(TimestampFormat),
	}
	if res.Inferred {
		changes[KeyMethod] = m.Name
		s.notify("%s: %s", id, res.Reason)
	}
	if err := s.store.Apply(ctx, id, changes); err != nil {
		return fmt.Errorf("persisting review of %s: %w", id, err)
	}
	s.notify("%s: interval updated from %v to %v (ease %v)", id, prior.Interval, next.Interval, next.Ease)

	if s.logger != nil {
		s.logger.Debug("review recorded",
			"id", id,
			"method", m.Name,
			"option", choice,
			"score", score,
			"interval", next.Interval,
			"ease", next.Ease,
		)
	}
	return nil
}

// Remove takes a note out of the scheduler, deleting every scheduling
// field in one batch. The method key is deleted too: removal returns
// the note to a clean unonboarded state with no residue.
func (s *Scheduler) Remove(ctx context.Context, id string) error {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reading note %s: %w", id, err)
	}
	if !IsOnboarded(n) {
		s.notify("%s is not onboarded", id)
		return nil
	}
	changes := map[string]any{
		KeyInterval:     nil,
		KeyEase:         nil,
		KeyLastReviewed: nil,
		KeyContexts:     nil,
		KeyMethod:       nil,
	}
	if err := s.store.Apply(ctx, id, changes); err != nil {
		return fmt.Errorf("removing %s from scheduling: %w", id, err)
	}
	s.notify("%s removed from scheduling", id)
	return nil
}

// BuildQueue scans the whole corpus and returns the due queue.
func (s *Scheduler) BuildQueue(ctx context.Context) (Queue, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return Queue{}, fmt.Errorf("listing notes: %w", err)
	}
	return s.queue.Build(notes, s.now()), nil
}

// NextDue returns the most overdue note. The ok result is false when
// the queue is empty; the notifier message distinguishes "no active
// contexts" from "nothing due".
func (s *Scheduler) NextDue(ctx context.Context) (Entry, bool, error) {
	q, err := s.BuildQueue(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	if q.NoActiveContexts {
		s.notify("no active contexts; activate one to build a review queue")
		return Entry{}, false, nil
	}
	head, ok := q.Head()
	if !ok {
		s.notify("nothing is due for review")
		return Entry{}, false, nil
	}
	return head, true, nil
}
