package schedule

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ZoneMode controls how bare timestamps (no explicit zone) are read.
type ZoneMode string

const (
	ZoneUTC   ZoneMode = "utc"
	ZoneLocal ZoneMode = "local"
)

// Settings is the top-level configuration object owning the method and
// context registries. It is loaded once at startup, mutated only through
// the explicit edit operations below, and persisted back in full on
// every mutation.
type Settings struct {
	Methods  []Method        `yaml:"methods"`
	Contexts []ReviewContext `yaml:"contexts,omitempty"`
	// DefaultZone interprets stored timestamps that carry no zone
	// indicator. Defaults to UTC.
	DefaultZone ZoneMode `yaml:"default-zone,omitempty"`

	path string
}

// DefaultSettings returns settings seeded with one method, satisfying
// the at-least-one-method invariant from the start.
func DefaultSettings() *Settings {
	return &Settings{
		Methods:     []Method{DefaultMethod()},
		DefaultZone: ZoneUTC,
	}
}

// LoadSettings reads settings from a YAML file.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: reading %s: %w", path, err)
	}

	s := &Settings{path: path}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	if s.DefaultZone == "" {
		s.DefaultZone = ZoneUTC
	}
	if len(s.Methods) == 0 {
		return nil, &ConfigError{Reason: "no spacing methods registered in " + path}
	}
	return s, nil
}

// SetPath pins the file the settings persist to.
func (s *Settings) SetPath(path string) { s.path = path }

// Save writes the settings back in full. Mutating operations call this
// so the on-disk state never lags the in-memory registries.
func (s *Settings) Save() error {
	if s.path == "" {
		return nil // in-memory settings (tests, embedding callers)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("settings: creating directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: serializing: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("settings: writing %s: %w", s.path, err)
	}
	return nil
}

// MethodByName returns the registered method with the given name.
func (s *Settings) MethodByName(name string) (*Method, bool) {
	for i := range s.Methods {
		if s.Methods[i].Name == name {
			return &s.Methods[i], true
		}
	}
	return nil, false
}

// FirstMethod returns the first registered method, the universal
// resolution fallback. Errors if the registry is empty, which violates
// the standing invariant.
func (s *Settings) FirstMethod() (*Method, error) {
	if len(s.Methods) == 0 {
		return nil, &ConfigError{Reason: "no spacing methods registered"}
	}
	return &s.Methods[0], nil
}

// AddMethod registers a new method. Names must be unique.
func (s *Settings) AddMethod(m Method) error {
	if m.Name == "" {
		return fmt.Errorf("method name cannot be empty")
	}
	if _, exists := s.MethodByName(m.Name); exists {
		return fmt.Errorf("method %q already exists", m.Name)
	}
	if m.Algorithm == "" {
		m.Algorithm = AlgorithmSM2
	}
	s.Methods = append(s.Methods, m)
	return s.Save()
}

// RenameMethod renames a method and cascades the rename into every
// context bound to the old name, keeping bindings coherent.
func (s *Settings) RenameMethod(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("method name cannot be empty")
	}
	if _, exists := s.MethodByName(newName); exists {
		return fmt.Errorf("method %q already exists", newName)
	}
	m, ok := s.MethodByName(oldName)
	if !ok {
		return fmt.Errorf("method %q not found", oldName)
	}
	m.Name = newName
	for i := range s.Contexts {
		if s.Contexts[i].Method == oldName {
			s.Contexts[i].Method = newName
		}
	}
	return s.Save()
}

// RemoveMethod deletes a method. Removing the last registered method is
// disallowed. Context bindings to the removed name are left in place;
// resolution recovers them via fallback rather than a cascade here.
func (s *Settings) RemoveMethod(name string) error {
	if len(s.Methods) <= 1 {
		return &ConfigError{Reason: "cannot remove the last spacing method"}
	}
	for i := range s.Methods {
		if s.Methods[i].Name == name {
			s.Methods = append(s.Methods[:i], s.Methods[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("method %q not found", name)
}

// ContextByName returns the registered context with the given name.
func (s *Settings) ContextByName(name string) (*ReviewContext, bool) {
	for i := range s.Contexts {
		if s.Contexts[i].Name == name {
			return &s.Contexts[i], true
		}
	}
	return nil, false
}

// ActiveContextNames returns the names of contexts with the active flag set.
func (s *Settings) ActiveContextNames() []string {
	var names []string
	for _, c := range s.Contexts {
		if c.Active {
			names = append(names, c.Name)
		}
	}
	return names
}

// ContextNames returns all registered context names in order.
func (s *Settings) ContextNames() []string {
	names := make([]string, 0, len(s.Contexts))
	for _, c := range s.Contexts {
		names = append(names, c.Name)
	}
	return names
}

// AddContext registers a new context. Names must be unique.
func (s *Settings) AddContext(c ReviewContext) error {
	if c.Name == "" {
		return fmt.Errorf("context name cannot be empty")
	}
	if _, exists := s.ContextByName(c.Name); exists {
		return fmt.Errorf("context %q already exists", c.Name)
	}
	s.Contexts = append(s.Contexts, c)
	return s.Save()
}

// ToggleContext flips a context's active flag and reports the new state.
func (s *Settings) ToggleContext(name string) (bool, error) {
	c, ok := s.ContextByName(name)
	if !ok {
		return false, fmt.Errorf("context %q not found", name)
	}
	c.Active = !c.Active
	return c.Active, s.Save()
}

// BindContext binds a context to a method by name. An empty method name
// clears the binding. Binding to an unregistered method is rejected;
// bindings only go stale through later method removal.
func (s *Settings) BindContext(name, method string) error {
	c, ok := s.ContextByName(name)
	if !ok {
		return fmt.Errorf("context %q not found", name)
	}
	if method != "" {
		if _, exists := s.MethodByName(method); !exists {
			return fmt.Errorf("method %q not found", method)
		}
	}
	c.Method = method
	return s.Save()
}

// RemoveContext deletes a context.
func (s *Settings) RemoveContext(name string) error {
	for i := range s.Contexts {
		if s.Contexts[i].Name == name {
			s.Contexts = append(s.Contexts[:i], s.Contexts[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("context %q not found", name)
}
