package sparseknn

import "runtime"

// DefaultEpsilon is the tie tolerance used when none is configured. Two
// distances closer than this are treated as equal when deciding neighbor
// inclusion.
const DefaultEpsilon float32 = 1e-10

// Options contains configuration shared by Extend and LowerRank.
type Options struct {
	// Epsilon is the tie tolerance. Must be > 0.
	Epsilon float32

	// NumWorkers is the number of goroutines processing row chunks.
	// 0 means runtime.GOMAXPROCS(0); 1 runs serially.
	NumWorkers int

	// DistanceFloor clamps emitted distances below Epsilon up to Epsilon.
	// Downstream graph layers treat a zero distance as a missing edge, so
	// identical points need a nonzero edge weight.
	DistanceFloor bool

	// UniqueDistanceRank makes LowerRank count distinct distance values
	// instead of entries when deciding where rank k is reached.
	UniqueDistanceRank bool

	// ReciprocalOnly makes LowerRank drop entries (i, j) that have no
	// reverse entry (j, i) before ranking.
	ReciprocalOnly bool

	// Logger receives operation logs. Nil disables logging.
	Logger *Logger

	// Metrics receives operation metrics. Nil disables collection.
	Metrics MetricsCollector
}

// Option configures Extend and LowerRank behavior.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Epsilon:    DefaultEpsilon,
		NumWorkers: 0,
	}
}

// WithEpsilon sets the tie tolerance.
func WithEpsilon(epsilon float32) Option {
	return func(o *Options) {
		o.Epsilon = epsilon
	}
}

// WithNumWorkers sets the number of goroutines used for row processing.
// Pass 1 to force serial execution.
func WithNumWorkers(n int) Option {
	return func(o *Options) {
		o.NumWorkers = n
	}
}

// WithDistanceFloor clamps output distances below epsilon up to epsilon.
func WithDistanceFloor() Option {
	return func(o *Options) {
		o.DistanceFloor = true
	}
}

// WithUniqueDistanceRank switches LowerRank to counting distinct distance
// values rather than entries.
func WithUniqueDistanceRank() Option {
	return func(o *Options) {
		o.UniqueDistanceRank = true
	}
}

// WithReciprocalOnly restricts LowerRank to edges present in both directions.
func WithReciprocalOnly() Option {
	return func(o *Options) {
		o.ReciprocalOnly = true
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector. If nil is passed, collection is
// disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

func (o Options) workers() int {
	if o.NumWorkers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.NumWorkers
}

func (o Options) validate() error {
	if o.Epsilon <= 0 {
		return ErrInvalidEpsilon
	}
	if o.NumWorkers < 0 {
		return ErrInvalidWorkers
	}
	return nil
}
