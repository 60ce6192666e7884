package schedule

import (
	"github.com/aretw0/introspection"
)

// SchedulerState exposes internal state for observability.
type SchedulerState struct {
	Methods        int      `json:"methods"`
	Contexts       int      `json:"contexts"`
	ActiveContexts []string `json:"active_contexts,omitempty"`
	DefaultZone    string   `json:"default_zone"`
}

// State implements introspection.Introspectable.
func (s *Scheduler) State() any {
	return SchedulerState{
		Methods:        len(s.settings.Methods),
		Contexts:       len(s.settings.Contexts),
		ActiveContexts: s.settings.ActiveContextNames(),
		DefaultZone:    string(s.settings.DefaultZone),
	}
}

// ComponentType implements introspection.Component.
func (s *Scheduler) ComponentType() string {
	return "scheduler"
}

var _ introspection.Introspectable = (*Scheduler)(nil)
var _ introspection.Component = (*Scheduler)(nil)
