package schedule

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		value string
		mode  ZoneMode
		want  time.Time
	}{
		{
			name:  "RFC3339 UTC",
			value: "2026-03-01T09:30:00Z",
			mode:  ZoneUTC,
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 With Offset",
			value: "2026-03-01T09:30:00+02:00",
			mode:  ZoneUTC,
			want:  time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC),
		},
		{
			// Zone mode must not touch explicitly zoned values.
			name:  "Zoned Ignores Local Mode",
			value: "2026-03-01T09:30:00Z",
			mode:  ZoneLocal,
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "Bare Seconds As UTC",
			value: "2026-03-01T09:30:00",
			mode:  ZoneUTC,
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "Bare Minutes As UTC",
			value: "2026-03-01T09:30",
			mode:  ZoneUTC,
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "Bare Date As UTC",
			value: "2026-03-01",
			mode:  ZoneUTC,
			want:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Bare Seconds As Local",
			value: "2026-03-01T09:30:00",
			mode:  ZoneLocal,
			want:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value, tt.mode)
			if err != nil {
				t.Fatalf("ParseTimestamp failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "yesterday", "03/01/2026", "2026-03-01TEN"} {
		if _, err := ParseTimestamp(value, ZoneUTC); err == nil {
			t.Errorf("expected error for %q", value)
		}
	}
}

func TestHasExplicitZone(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"2026-03-01T09:30:00Z", true},
		{"2026-03-01T09:30:00+02:00", true},
		{"2026-03-01T09:30:00-05:00", true},
		// The date's own dashes must not read as an offset.
		{"2026-03-01T09:30:00", false},
		{"2026-03-01", false},
	}
	for _, tt := range tests {
		if got := hasExplicitZone(tt.value); got != tt.want {
			t.Errorf("hasExplicitZone(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLastReviewedTime(t *testing.T) {
	t.Run("Missing Means Epoch", func(t *testing.T) {
		got, err := lastReviewedTime(map[string]any{}, ZoneUTC)
		if err != nil {
			t.Fatalf("lastReviewedTime failed: %v", err)
		}
		if !got.Equal(time.Unix(0, 0)) {
			t.Errorf("got %v, want epoch", got)
		}
	})

	t.Run("Native Time From YAML", func(t *testing.T) {
		want := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		got, err := lastReviewedTime(map[string]any{KeyLastReviewed: want}, ZoneUTC)
		if err != nil {
			t.Fatalf("lastReviewedTime failed: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}
