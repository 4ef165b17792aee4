package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter[T any] struct {
	expression string
	program    *vm.Program
	subject    Subject[T]
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*compilerSettings)

type compilerSettings struct {
	cacheSize   int
	helperFuncs map[string]any
}

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(s *compilerSettings) {
		s.cacheSize = size
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(s *compilerSettings) {
		maps.Copy(s.helperFuncs, funcs)
	}
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler[T any] struct {
	subject     Subject[T]
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter[T]]
}

// NewExprCompiler creates a compiler for expressions over subject
func NewExprCompiler[T any](subject Subject[T], opts ...ExprCompilerOption) CachingCompiler[T] {
	settings := &compilerSettings{helperFuncs: createHelperFunctions()}
	for _, opt := range opts {
		opt(settings)
	}

	c := &exprCompiler[T]{
		subject:     subject,
		helperFuncs: settings.helperFuncs,
	}
	if settings.cacheSize > 0 {
		c.cache = newLRUCache[CompiledFilter[T]](settings.cacheSize)
	}
	return c
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler[T]) Compile(expression string) (CompiledFilter[T], error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// The zero item provides the variable types for checking
	var zero T
	program, err := expr.Compile(expression,
		expr.Env(buildEnv(c.helperFuncs, c.subject.Env(zero))),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter[T]{
		expression: expression,
		program:    program,
		subject:    c.subject,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler[T]) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler[T]) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Match evaluates the filter against item
func (f *exprFilter[T]) Match(item T) (bool, error) {
	result, err := expr.Run(f.program, buildEnv(f.helpers, f.subject.Env(item)))
	if err != nil {
		label := ""
		if f.subject.Label != nil {
			label = f.subject.Label(item)
		}
		return false, &EvaluationError{
			Expression: f.expression,
			Subject:    f.subject.Name,
			Item:       label,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter[T]) Expression() string {
	return f.expression
}

func buildEnv(helpers, vars map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+len(vars))
	maps.Copy(env, helpers)
	maps.Copy(env, vars)
	return env
}

// createHelperFunctions creates the helpers shared by every subject
func createHelperFunctions() map[string]any {
	return map[string]any{
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"parseDate": parseDate,
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
	}
}

// shipDateLayouts lists the timestamp forms the pet-store emits
var shipDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// parseDate parses a date or timestamp; an unparsable value yields the zero time
func parseDate(s string) time.Time {
	for _, layout := range shipDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
