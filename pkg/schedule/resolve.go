package schedule

import (
	"fmt"

	"github.com/fallow-md/fallow/pkg/core"
)

// Resolution is the outcome of determining which method governs a note.
// When Inferred is set, the caller persists the method name back onto
// the note so later resolutions take the fast path, and surfaces Reason
// to the user so the implicit choice is observable.
type Resolution struct {
	Method   *Method
	Inferred bool
	Reason   string
}

// Resolver determines the governing method for a note.
type Resolver struct {
	settings *Settings
}

// NewResolver creates a resolver over the given settings.
func NewResolver(settings *Settings) *Resolver {
	return &Resolver{settings: settings}
}

// Resolve applies the ordered precedence rules:
//
//  1. A stored method name that matches a registered method wins. The
//     binding is intentionally sticky so it survives context
//     re-assignment and registry reordering.
//  2. A note with no contexts falls to the first registered method.
//  3. Otherwise the note's first context's bound method applies, if
//     that method still exists.
//  4. Anything else (unbound context, stale binding, stale stored name)
//     falls to the first registered method.
//
// Resolution never fails while at least one method is registered; an
// empty registry is a configuration error.
func (r *Resolver) Resolve(n core.Note) (Resolution, error) {
	if name, ok := stringField(n.Metadata, KeyMethod); ok {
		if m, found := r.settings.MethodByName(name); found {
			return Resolution{Method: m}, nil
		}
	}

	first, err := r.settings.FirstMethod()
	if err != nil {
		return Resolution{}, err
	}

	contexts := noteContexts(n)
	if len(contexts) == 0 {
		return Resolution{
			Method:   first,
			Inferred: true,
			Reason:   fmt.Sprintf("note has no contexts; using first method %q", first.Name),
		}, nil
	}

	if ctx, ok := r.settings.ContextByName(contexts[0]); ok && ctx.Method != "" {
		if m, found := r.settings.MethodByName(ctx.Method); found {
			return Resolution{
				Method:   m,
				Inferred: true,
				Reason:   fmt.Sprintf("using method %q bound to context %q", m.Name, ctx.Name),
			}, nil
		}
	}

	return Resolution{
		Method:   first,
		Inferred: true,
		Reason:   fmt.Sprintf("context %q has no usable method; using first method %q", contexts[0], first.Name),
	}, nil
}
