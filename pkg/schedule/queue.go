package schedule

import (
	"log/slog"
	"sort"
	"time"

	"github.com/fallow-md/fallow/pkg/core"
)

// dayMillis converts an interval in days to a duration. The day is a
// fixed 86400000ms, matching the stored arithmetic of existing notes.
func dayMillis(days float64) time.Duration {
	return time.Duration(days * 86400000 * float64(time.Millisecond))
}

// Entry is one due note with its computed due time.
type Entry struct {
	Note core.Note
	Due  time.Time
}

// Queue is the materialized result of a due scan. Entries are ordered
// most-overdue first. NoActiveContexts distinguishes "contexts exist but
// none is active" (empty by design) from "nothing is due".
type Queue struct {
	Entries          []Entry
	NoActiveContexts bool
}

// Head returns the most overdue note.
func (q Queue) Head() (Entry, bool) {
	if len(q.Entries) == 0 {
		return Entry{}, false
	}
	return q.Entries[0], true
}

// QueueBuilder filters the note corpus by active contexts and due
// status and orders the survivors by due time. It holds no state across
// builds; every call rescans from scratch.
type QueueBuilder struct {
	settings *Settings
	logger   *slog.Logger
}

// NewQueueBuilder creates a builder over the given settings.
func NewQueueBuilder(settings *Settings, logger *slog.Logger) *QueueBuilder {
	return &QueueBuilder{settings: settings, logger: logger}
}

// Build computes the due queue at the given instant.
//
// Context filter: with no contexts registered every note passes; with
// contexts registered but none active the queue is empty with the
// NoActiveContexts signal set; otherwise a note passes iff its own
// context list is empty (untagged notes are always included) or shares
// a name with the active set.
//
// Due filter: a note passes iff it is onboarded and now is strictly
// past lastReviewed + interval days. Notes that fail timestamp parsing
// are skipped with a warning rather than failing the whole scan.
//
// Ordering: ascending due time; the sort is stable so ties keep input
// order for reproducibility.
func (b *QueueBuilder) Build(notes []core.Note, now time.Time) Queue {
	var active map[string]bool
	if len(b.settings.Contexts) > 0 {
		names := b.settings.ActiveContextNames()
		if len(names) == 0 {
			return Queue{NoActiveContexts: true}
		}
		active = make(map[string]bool, len(names))
		for _, name := range names {
			active[name] = true
		}
	}

	var entries []Entry
	for _, n := range notes {
		if !IsOnboarded(n) {
			continue
		}
		if active != nil && !passesContextFilter(n, active) {
			continue
		}

		interval, ok := floatField(n.Metadata, KeyInterval)
		if !ok || interval <= 0 {
			if b.logger != nil {
				b.logger.Warn("skipping note with unreadable interval", "id", n.ID)
			}
			continue
		}
		last, err := lastReviewedTime(n.Metadata, b.settings.DefaultZone)
		if err != nil {
			if b.logger != nil {
				b.logger.Warn("skipping note with unreadable last-reviewed", "id", n.ID, "error", err)
			}
			continue
		}

		due := last.Add(dayMillis(interval))
		if !now.After(due) {
			continue
		}
		entries = append(entries, Entry{Note: n, Due: due})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Due.Before(entries[j].Due)
	})

	return Queue{Entries: entries}
}

// passesContextFilter reports whether a note survives the active-context
// filter. Untagged notes always pass.
func passesContextFilter(n core.Note, active map[string]bool) bool {
	contexts := noteContexts(n)
	if len(contexts) == 0 {
		return true
	}
	for _, name := range contexts {
		if active[name] {
			return true
		}
	}
	return false
}
