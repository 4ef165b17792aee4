package filter

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter[T any] interface {
	// Match reports whether item satisfies the filter
	Match(item T) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler[T any] interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter[T], error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler[T any] interface {
	Compiler[T]

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Subject describes how a resource is exposed to expressions
type Subject[T any] struct {
	// Name identifies the resource kind in error messages, e.g. "pet"
	Name string
	// Label identifies a single item in error messages
	Label func(item T) string
	// Env builds the variables and helpers visible to an expression.
	// It must accept the zero value of T.
	Env func(item T) map[string]any
}
