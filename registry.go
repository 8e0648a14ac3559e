package ledeffects

// This file contains the registry of named effects from which the host
// creates instances

import (
	"sort"
	"sync"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// Factory creates a fresh effect for a single activation
type Factory func(cfg *Config) (effect Effect, err errors.Error)

type Registry struct {
	factories map[string]Factory
	sync.Mutex
}

var (
	// Effects is the registry populated by the effects of this package when
	// the process starts
	Effects = NewRegistry()
)

func NewRegistry() (reg *Registry) {
	return &Registry{
		factories: map[string]Factory{},
	}
}

// Add registers a factory under a fixed name, names may only be used once
func (reg *Registry) Add(name string, factory Factory) (err errors.Error) {
	if len(name) == 0 || factory == nil {
		return errors.New("effect registration needs a name and a factory").With("effect", name).With("stack", stack.Trace().TrimRuntime())
	}

	reg.Lock()
	defer reg.Unlock()

	if _, isPresent := reg.factories[name]; isPresent {
		return errors.New("effect already registered").With("effect", name).With("stack", stack.Trace().TrimRuntime())
	}
	reg.factories[name] = factory
	return nil
}

// Names returns the registered effect names in sorted order
func (reg *Registry) Names() (names []string) {
	reg.Lock()
	defer reg.Unlock()

	names = make([]string, 0, len(reg.factories))
	for name := range reg.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates an uninitialized instance of the named effect
func (reg *Registry) New(name string, cfg *Config) (inst *Instance, err errors.Error) {
	reg.Lock()
	factory, isPresent := reg.factories[name]
	reg.Unlock()

	if !isPresent {
		return nil, errors.New("effect not registered").With("effect", name).With("stack", stack.Trace().TrimRuntime())
	}

	effect, err := factory(cfg)
	if err != nil {
		return nil, err.With("effect", name)
	}
	return NewInstance(name, effect), nil
}
