package schedule

import (
	"errors"
	"testing"
)

func sm2Method() *Method {
	m := DefaultMethod()
	return &m
}

func TestSuperMemo2Exact(t *testing.T) {
	tests := []struct {
		name         string
		prior        State
		score        float64
		wantInterval float64
		wantEase     float64
	}{
		{
			// Perfect score grows the interval by the bumped ease.
			name:         "Score 5 From Defaults",
			prior:        State{Interval: 1, Ease: 2.5},
			score:        5,
			wantInterval: 2.6,
			wantEase:     2.6,
		},
		{
			// Score below 3 resets the interval to one day but the
			// ease still takes the formula's penalty.
			name:         "Score 1 Resets Interval",
			prior:        State{Interval: 2.6, Ease: 2.6},
			score:        1,
			wantInterval: 1,
			wantEase:     2.06,
		},
		{
			name:         "Score 4 Keeps Ease",
			prior:        State{Interval: 2, Ease: 2.5},
			score:        4,
			wantInterval: 5,
			wantEase:     2.5,
		},
		{
			name:         "Score 3 Shrinks Ease",
			prior:        State{Interval: 10, Ease: 2.5},
			score:        3,
			wantInterval: 23.6,
			wantEase:     2.36,
		},
		{
			// 1.3 floor: 1.3 + (0.1 - 4*0.16) = 0.76 → clamped.
			name:         "Ease Floor",
			prior:        State{Interval: 5, Ease: 1.3},
			score:        1,
			wantInterval: 1,
			wantEase:     1.3,
		},
		{
			// Interval never drops below one day even for tiny priors.
			name:         "Interval Floor",
			prior:        State{Interval: 0.1, Ease: 1.3},
			score:        3,
			wantInterval: 1,
			wantEase:     1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SuperMemo2{}.Next(tt.prior, tt.score, sm2Method())
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			// Rounding to 4 decimals is part of the contract, so the
			// comparison is exact.
			if got.Interval != tt.wantInterval {
				t.Errorf("interval = %v, want %v", got.Interval, tt.wantInterval)
			}
			if got.Ease != tt.wantEase {
				t.Errorf("ease = %v, want %v", got.Ease, tt.wantEase)
			}
		})
	}
}

func TestSuperMemo2LowScoresAlwaysReset(t *testing.T) {
	priors := []State{
		{Interval: 1, Ease: 1.3},
		{Interval: 50, Ease: 2.5},
		{Interval: 365, Ease: 3.2},
	}
	for _, score := range []float64{0, 1, 2, 2.9} {
		for _, prior := range priors {
			got, err := SuperMemo2{}.Next(prior, score, sm2Method())
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if got.Interval != 1 {
				t.Errorf("score %v from %+v: interval = %v, want 1", score, prior, got.Interval)
			}
			if got.Ease < 1.3 {
				t.Errorf("score %v from %+v: ease = %v below floor", score, prior, got.Ease)
			}
		}
	}
}

func TestSuperMemo2DefaultsFromMethod(t *testing.T) {
	m := &Method{
		Name:            "custom-defaults",
		Algorithm:       AlgorithmSM2,
		DefaultInterval: 3,
		DefaultEase:     2.2,
	}

	// Zero prior state means "first review after onboarding".
	got, err := SuperMemo2{}.Next(State{}, 5, m)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	// ease' = 2.2 + 0.1 = 2.3; interval' = 3 * 2.3 = 6.9
	if got.Ease != 2.3 {
		t.Errorf("ease = %v, want 2.3", got.Ease)
	}
	if got.Interval != 6.9 {
		t.Errorf("interval = %v, want 6.9", got.Interval)
	}
}

func TestSuperMemo2FallbackEase(t *testing.T) {
	m := &Method{Name: "no-ease", Algorithm: AlgorithmSM2, DefaultInterval: 1}

	got, err := SuperMemo2{}.Next(State{}, 5, m)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got.Ease != 2.6 {
		t.Errorf("ease = %v, want 2.6 (2.5 fallback + 0.1)", got.Ease)
	}
}

func TestSuperMemo2ScoreOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.1, 5.1} {
		if _, err := (SuperMemo2{}).Next(State{Interval: 1, Ease: 2.5}, score, sm2Method()); err == nil {
			t.Errorf("expected error for score %v", score)
		}
	}
}

func TestAlgorithmsDispatch(t *testing.T) {
	algs := DefaultAlgorithms()

	t.Run("SM2 Registered", func(t *testing.T) {
		if _, err := algs.For(sm2Method()); err != nil {
			t.Fatalf("For failed: %v", err)
		}
	})

	t.Run("Empty Kind Defaults To SM2", func(t *testing.T) {
		m := &Method{Name: "legacy"}
		if _, err := algs.For(m); err != nil {
			t.Fatalf("For failed: %v", err)
		}
	})

	t.Run("Custom Unregistered Fails Explicitly", func(t *testing.T) {
		m := &Method{Name: "scripted", Algorithm: AlgorithmCustom}
		_, err := algs.For(m)
		if !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("expected ErrNotImplemented, got %v", err)
		}
	})

	t.Run("Custom Registered Dispatches", func(t *testing.T) {
		algs[AlgorithmCustom] = SuperMemo2{}
		m := &Method{Name: "scripted", Algorithm: AlgorithmCustom}
		if _, err := algs.For(m); err != nil {
			t.Fatalf("For failed: %v", err)
		}
	})
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.60004999, 2.6},
		{2.059951, 2.06},
		{2.059949, 2.0599},
		{5.356, 5.356},
		{1, 1},
	}
	for _, tt := range tests {
		if got := round4(tt.in); got != tt.want {
			t.Errorf("round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
