// Package schedule implements the spaced-repetition core: spacing
// method and context registries, method resolution, due-queue building,
// and the SuperMemo-2.0 interval engine.
//
// The reviewed unit is a whole note rather than a flashcard, and the
// review score is a subjective judgment of writing progress. Storage,
// prompting, and notification are collaborators behind small interfaces
// so the core stays a set of pure decisions over note metadata.
package schedule
