package runtime

import (
	"fmt"
	"sort"
)

// UndefinedVariableError reports a name missing from every frame of a chain.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Environment is one lexical scope frame. The enclosing link is fixed at
// construction.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new frame, optionally nested under an enclosing one.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil for the global frame).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Assign updates an existing binding in the first frame where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Ancestor walks exactly distance enclosing links. A chain shorter than the
// requested distance means the resolver and interpreter disagree.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			panic(fmt.Sprintf("runtime: scope chain ends %d frames short of distance %d", distance-i, distance))
		}
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the frame distance links away.
func (e *Environment) GetAt(distance int, name string) Value {
	v, ok := e.Ancestor(distance).values[name]
	if !ok {
		panic(fmt.Sprintf("runtime: resolved variable '%s' missing at distance %d", name, distance))
	}
	return v
}

// AssignAt writes name into the frame distance links away.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.Ancestor(distance).values[name] = value
}

// Has reports whether name is bound directly in this frame.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns this frame's bindings in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
