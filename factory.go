package arbor

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownState is returned when a push names a key with no registered
// constructor.
var ErrUnknownState = errors.New("arbor: unknown state")

// StateConstructor builds a state for the given stack and shared context.
type StateConstructor func(stack *StateStack, ctx *Context) State

// StateFactory maps state keys to constructors.
type StateFactory struct {
	ctors map[string]StateConstructor
}

// NewStateFactory returns an empty factory.
func NewStateFactory() *StateFactory {
	return &StateFactory{ctors: make(map[string]StateConstructor)}
}

// Register binds key to ctor. Registering the same key twice or a nil
// constructor is a programming error and panics.
func (f *StateFactory) Register(key string, ctor StateConstructor) {
	if ctor == nil {
		panic(fmt.Sprintf("arbor: nil constructor for state %q", key))
	}
	if _, dup := f.ctors[key]; dup {
		panic(fmt.Sprintf("arbor: state %q registered twice", key))
	}
	f.ctors[key] = ctor
}

// Has reports whether key is registered.
func (f *StateFactory) Has(key string) bool {
	_, ok := f.ctors[key]
	return ok
}

// Keys returns the registered keys, sorted.
func (f *StateFactory) Keys() []string {
	keys := make([]string, 0, len(f.ctors))
	for k := range f.ctors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Create builds a new state for key.
func (f *StateFactory) Create(key string, stack *StateStack, ctx *Context) (State, error) {
	ctor, ok := f.ctors[key]
	if !ok {
		return nil, fmt.Errorf("create %q: %w", key, ErrUnknownState)
	}
	return ctor(stack, ctx), nil
}
