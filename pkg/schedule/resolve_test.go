package schedule

import (
	"errors"
	"testing"

	"github.com/fallow-md/fallow/pkg/core"
)

func testSettings() *Settings {
	return &Settings{
		Methods: []Method{
			{Name: "first", Algorithm: AlgorithmSM2, DefaultInterval: 1, DefaultEase: 2.5},
			{Name: "second", Algorithm: AlgorithmSM2, DefaultInterval: 2, DefaultEase: 2.5},
		},
		Contexts: []ReviewContext{
			{Name: "journal", Active: true, Method: "second"},
			{Name: "drafts", Active: true},
			{Name: "stale", Active: true, Method: "deleted-method"},
		},
		DefaultZone: ZoneUTC,
	}
}

func note(id string, metadata core.Metadata) core.Note {
	if metadata == nil {
		metadata = make(core.Metadata)
	}
	return core.Note{ID: id, Metadata: metadata}
}

func TestResolvePrecedence(t *testing.T) {
	r := NewResolver(testSettings())

	tests := []struct {
		name         string
		metadata     core.Metadata
		wantMethod   string
		wantInferred bool
	}{
		{
			name:         "Stored Method Wins",
			metadata:     core.Metadata{KeyMethod: "second", KeyContexts: []any{"journal"}},
			wantMethod:   "second",
			wantInferred: false,
		},
		{
			// Stickiness: the stored name beats the context binding
			// even when the first context points elsewhere.
			name:         "Stored Method Beats Context Binding",
			metadata:     core.Metadata{KeyMethod: "first", KeyContexts: []any{"journal"}},
			wantMethod:   "first",
			wantInferred: false,
		},
		{
			name:         "No Contexts Falls To First",
			metadata:     core.Metadata{},
			wantMethod:   "first",
			wantInferred: true,
		},
		{
			name:         "First Context Binding Applies",
			metadata:     core.Metadata{KeyContexts: []any{"journal", "drafts"}},
			wantMethod:   "second",
			wantInferred: true,
		},
		{
			name:         "Unbound Context Falls To First",
			metadata:     core.Metadata{KeyContexts: []any{"drafts"}},
			wantMethod:   "first",
			wantInferred: true,
		},
		{
			name:         "Stale Context Binding Falls To First",
			metadata:     core.Metadata{KeyContexts: []any{"stale"}},
			wantMethod:   "first",
			wantInferred: true,
		},
		{
			name:         "Unknown Context Falls To First",
			metadata:     core.Metadata{KeyContexts: []any{"never-registered"}},
			wantMethod:   "first",
			wantInferred: true,
		},
		{
			name:         "Stale Stored Method Re-resolves",
			metadata:     core.Metadata{KeyMethod: "deleted-method", KeyContexts: []any{"journal"}},
			wantMethod:   "second",
			wantInferred: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(note("n", tt.metadata))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if res.Method.Name != tt.wantMethod {
				t.Errorf("method = %q, want %q", res.Method.Name, tt.wantMethod)
			}
			if res.Inferred != tt.wantInferred {
				t.Errorf("inferred = %v, want %v", res.Inferred, tt.wantInferred)
			}
			if res.Inferred && res.Reason == "" {
				t.Error("inferred resolution must carry a reason for the user")
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(testSettings())
	n := note("n", core.Metadata{KeyContexts: []any{"journal"}})

	first, err := r.Resolve(n)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !first.Inferred {
		t.Fatal("expected first resolution to be inferred")
	}

	// Persisting the inferred name (as the orchestration layer does)
	// makes the second resolution hit the fast path.
	n.Metadata[KeyMethod] = first.Method.Name

	second, err := r.Resolve(n)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if second.Method.Name != first.Method.Name {
		t.Errorf("second resolution = %q, want %q", second.Method.Name, first.Method.Name)
	}
	if second.Inferred {
		t.Error("second resolution must not be inferred again")
	}
}

func TestResolveNoMethods(t *testing.T) {
	r := NewResolver(&Settings{DefaultZone: ZoneUTC})
	_, err := r.Resolve(note("n", nil))
	if err == nil {
		t.Fatal("expected configuration error with zero methods")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}
