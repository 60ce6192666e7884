package schedule

import (
	"fmt"
	"math"
)

// State is the scheduling state carried by a note: its current interval
// in days and its ease factor.
type State struct {
	Interval float64
	Ease     float64
}

// Algorithm computes the next scheduling state from a review outcome.
// Implementations must be pure functions of their inputs.
type Algorithm interface {
	// Next maps a quality score in [0, 5] and the prior state to the
	// new state, consulting the method for configured defaults.
	Next(prior State, score float64, m *Method) (State, error)
}

// minEase is the textbook SM-2 floor preventing runaway ease shrinking.
const minEase = 1.3

// fallbackEase is used when a SuperMemo2.0 method declares no default ease.
const fallbackEase = 2.5

// SuperMemo2 is the built-in interval algorithm, a variant of the
// SuperMemo-2.0 formula operating on whole notes instead of flashcards.
//
// Scores below 3 signal insufficient progress: the interval resets to
// one day regardless of the accumulated ease, rather than letting a high
// ease produce a long interval from a poor outcome.
type SuperMemo2 struct{}

// Next implements Algorithm.
func (SuperMemo2) Next(prior State, score float64, m *Method) (State, error) {
	if score < 0 || score > 5 {
		return State{}, fmt.Errorf("review score %v out of range [0, 5]", score)
	}

	interval := prior.Interval
	if interval <= 0 {
		interval = m.DefaultInterval
	}
	ease := prior.Ease
	if ease <= 0 {
		ease = m.DefaultEase
	}
	if ease <= 0 {
		ease = fallbackEase
	}

	q := 5 - score
	ease = ease + (0.1 - q*(0.08+q*0.02))
	ease = math.Max(minEase, round4(ease))

	interval = round4(math.Max(1, interval*ease))
	if score < 3 {
		interval = 1
	}

	return State{Interval: interval, Ease: ease}, nil
}

// round4 rounds to 4 decimal places. The precision is deliberate: values
// land in human-readable metadata and logs, and tests compare exactly.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Algorithms maps algorithm kinds to implementations. The zero registry
// from DefaultAlgorithms knows SuperMemo2.0; custom strategies can be
// added by embedding callers.
type Algorithms map[AlgorithmKind]Algorithm

// DefaultAlgorithms returns the built-in algorithm set.
func DefaultAlgorithms() Algorithms {
	return Algorithms{AlgorithmSM2: SuperMemo2{}}
}

// For returns the algorithm a method dispatches to. An unregistered
// kind (notably an unimplemented Custom method) fails explicitly rather
// than silently doing nothing.
func (a Algorithms) For(m *Method) (Algorithm, error) {
	kind := m.Algorithm
	if kind == "" {
		kind = AlgorithmSM2
	}
	alg, ok := a[kind]
	if !ok {
		return nil, fmt.Errorf("method %q uses algorithm %q: %w", m.Name, kind, ErrNotImplemented)
	}
	return alg, nil
}
