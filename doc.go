// Package fallow is the composition root for the fallow scheduler.
//
// It connects the scheduling core (method resolution, due-queue
// building, the SuperMemo-2.0 interval engine) with the infrastructure
// adapters (frontmatter file storage, terminal prompts).
//
// Philosophy:
//
// Fallow treats a directory of Markdown notes as a field under
// cultivation: each note is revisited on a spaced schedule, and each
// review pushes its next visit further out according to how the writing
// went. Unlike flashcard systems, the reviewed unit is the whole note
// and the review score is a judgment of progress, not recall.
//
// Features:
//
//   - **Whole-note spaced repetition**: a configurable SuperMemo-2.0
//     variant over interval/ease metadata in YAML frontmatter.
//   - **Spacing methods**: named scheduling configurations with their
//     own review options and defaults.
//   - **Contexts**: toggleable note groupings that filter the due queue
//     and can bind a default method.
//   - **Atomic metadata writes**: all mutations for one review land in
//     a single atomic file write.
//   - **Extensible**: storage behind core.Store, algorithms behind
//     schedule.Algorithm.
//
// Usage:
//
//	svc, err := fallow.New("./vault",
//		fallow.WithAutoInit(true),
//		fallow.WithLogger(logger),
//	)
//
//	// Review the most overdue note
//	entry, ok, err := svc.NextDue(ctx)
package fallow
