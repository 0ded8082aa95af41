package dfield

// GenerateOption configures a Generate call.
// Use functional options to customize generation behavior.
//
// Example:
//
//	// Default: one worker per CPU
//	field, err := dfield.Generate(data, 64, 64, 32, 32, 8)
//
//	// Pin the worker count (useful for benchmarking or background jobs)
//	field, err := dfield.Generate(data, 64, 64, 32, 32, 8, dfield.WithWorkers(2))
type GenerateOption func(*generateOptions)

// generateOptions holds optional configuration for Generate.
type generateOptions struct {
	workers int
}

// WithWorkers sets the number of goroutines used to fill output rows.
// Zero or negative means GOMAXPROCS. The worker count never changes the
// result, only how the rows are distributed.
func WithWorkers(n int) GenerateOption {
	return func(o *generateOptions) {
		o.workers = n
	}
}
