package schedule

import "fmt"

// AlgorithmKind selects the interval algorithm a method runs.
type AlgorithmKind string

const (
	// AlgorithmSM2 is the built-in SuperMemo-2.0 variant.
	AlgorithmSM2 AlgorithmKind = "SuperMemo2.0"
	// AlgorithmCustom is a declared extension point. Reviewing a note
	// governed by a custom method fails unless a strategy is registered.
	AlgorithmCustom AlgorithmKind = "Custom"
)

// ReviewOption is one selectable review outcome, mapping a human label
// to a quality score in [0, 5]. Score is a pointer so that a missing
// score (a configuration mistake) is distinguishable from zero.
type ReviewOption struct {
	Name  string   `yaml:"name"`
	Score *float64 `yaml:"score"`
}

// Method is a named scheduling configuration. A note is always governed
// by exactly one method, resolved through the rules in resolve.go.
type Method struct {
	Name            string         `yaml:"name"`
	Algorithm       AlgorithmKind  `yaml:"algorithm"`
	ReviewOptions   []ReviewOption `yaml:"review-options"`
	DefaultInterval float64        `yaml:"default-interval"`
	// DefaultEase is only meaningful for the SuperMemo2.0 algorithm.
	// Zero means unset; the engine substitutes a standard 2.5.
	DefaultEase float64 `yaml:"default-ease,omitempty"`
}

// OptionScore returns the quality score for the named review option.
// A missing option or an option without a score is a configuration error.
func (m *Method) OptionScore(name string) (float64, error) {
	for _, opt := range m.ReviewOptions {
		if opt.Name != name {
			continue
		}
		if opt.Score == nil {
			return 0, &ConfigError{Reason: fmt.Sprintf("review option %q of method %q has no score", name, m.Name)}
		}
		return *opt.Score, nil
	}
	return 0, &ConfigError{Reason: fmt.Sprintf("method %q has no review option %q", m.Name, name)}
}

// OptionNames returns the option labels in configured order.
func (m *Method) OptionNames() []string {
	names := make([]string, 0, len(m.ReviewOptions))
	for _, opt := range m.ReviewOptions {
		names = append(names, opt.Name)
	}
	return names
}

// ReviewContext is a named, toggleable grouping of notes. It filters the
// due queue and can bind a default method for its notes.
type ReviewContext struct {
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`
	// Method is the bound method name; empty means unbound. The binding
	// is by name and may go stale when methods are removed; consumers
	// must fall back rather than fail.
	Method string `yaml:"method,omitempty"`
}

func score(v float64) *float64 { return &v }

// DefaultMethod returns the method seeded into fresh vaults, satisfying
// the invariant that at least one method always exists.
func DefaultMethod() Method {
	return Method{
		Name:            "Writing practice",
		Algorithm:       AlgorithmSM2,
		DefaultInterval: 1,
		DefaultEase:     2.5,
		ReviewOptions: []ReviewOption{
			{Name: "Struggled", Score: score(1)},
			{Name: "Advanced", Score: score(3)},
			{Name: "Flowed", Score: score(5)},
		},
	}
}
