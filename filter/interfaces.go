package filter

// Record is a listed item a filter can be evaluated against
type Record interface {
	// Fields returns the variables exposed to filter expressions
	Fields() map[string]any

	// String identifies the record in error messages
	String() string
}

// Filter defines the basic interface for record filters
type Filter interface {
	// Evaluate checks if a record matches the filter criteria. A record
	// the expression cannot be evaluated against does not match.
	Evaluate(record Record) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Check evaluates the filter and reports evaluation failures
	Check(record Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
