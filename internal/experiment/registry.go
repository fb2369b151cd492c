package experiment

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/physics"
)

// Option sets an optional attribute of a registered field.
type Option func(*dynamo.VectorField)

func WithInitial(s dynamo.State) Option {
	return func(f *dynamo.VectorField) { f.Initial = s }
}

func WithTitle(title string) Option {
	return func(f *dynamo.VectorField) { f.Title = title }
}

func WithDescription(desc string) Option {
	return func(f *dynamo.VectorField) { f.Description = desc }
}

func WithLink(link string) Option {
	return func(f *dynamo.VectorField) { f.Link = link }
}

// Registry maps field names to vector fields and remembers the order in
// which they were registered.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]dynamo.VectorField
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]dynamo.VectorField)}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry holding the physics catalog.
// It is built on first use and must not be modified afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		for _, f := range physics.Catalog() {
			if err := defaultReg.Add(f); err != nil {
				panic(err)
			}
		}
	})
	return defaultReg
}

// Register adds a field built from its parts. The initial condition
// defaults to (0.1, 0.1, 0.1).
func (r *Registry) Register(name string, derive dynamo.Derivative, specs []dynamo.ParamSpec, opts ...Option) error {
	f := dynamo.VectorField{
		Name:    name,
		Title:   name,
		Derive:  derive,
		Params:  append([]dynamo.ParamSpec(nil), specs...),
		Initial: dynamo.State{0.1, 0.1, 0.1},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return r.Add(f)
}

// Add registers a complete field.
func (r *Registry) Add(f dynamo.VectorField) error {
	key := normalize(f.Name)
	if key == "" {
		return errors.New("register: empty field name")
	}
	if f.Derive == nil {
		return fmt.Errorf("register %s: nil derivative", f.Name)
	}
	for _, spec := range f.Params {
		if spec.Min > spec.Max || !spec.Contains(spec.Default) {
			return fmt.Errorf("register %s: %w: parameter %s default %g outside [%g, %g]",
				f.Name, dynamo.ErrParameterBounds, spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[key]; ok {
		return fmt.Errorf("register %s: already registered", f.Name)
	}
	f.Name = key
	r.fields[key] = f
	r.order = append(r.order, key)
	return nil
}

// Lookup finds a field by name, ignoring case.
func (r *Registry) Lookup(name string) (dynamo.VectorField, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fields[normalize(name)]
	if !ok {
		return dynamo.VectorField{}, &dynamo.NotFoundError{Name: name}
	}
	return f, nil
}

// Names lists registered fields in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Fields returns every registered field in registration order.
func (r *Registry) Fields() []dynamo.VectorField {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dynamo.VectorField, len(r.order))
	for i, name := range r.order {
		out[i] = r.fields[name]
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
