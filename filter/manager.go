package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager keeps named filters for one subject and resolves filter arguments
// that are either a registered name or an inline expression.
type Manager[T any] struct {
	compiler Compiler[T]
	filters  map[string]CompiledFilter[T]
	mu       sync.RWMutex
}

// NewManager creates a new filter manager
func NewManager[T any](compiler Compiler[T]) *Manager[T] {
	return &Manager[T]{
		compiler: compiler,
		filters:  make(map[string]CompiledFilter[T]),
	}
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager[T]) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// if any expression fails to compile.
func (m *Manager[T]) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter[T], len(filters))

	// Compile all filters first
	for _, name := range slices.Sorted(maps.Keys(filters)) {
		filter, err := m.compiler.Compile(filters[name])
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager[T]) GetFilter(name string) (CompiledFilter[T], bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager[T]) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the registered filter called nameOrExpr, or compiles
// nameOrExpr as an expression when no such filter exists.
func (m *Manager[T]) Resolve(nameOrExpr string) (CompiledFilter[T], error) {
	if filter, ok := m.GetFilter(nameOrExpr); ok {
		return filter, nil
	}
	return m.compiler.Compile(nameOrExpr)
}
