// Package metrics defines a minimal, backend-agnostic instrumentation
// surface for the simulator engine: a Provider constructs named Counter,
// UpDownCounter, and Histogram instruments. The simulator itself is
// single-threaded (the engine never services more than one CPUModel or
// HWModel concurrently), so instrument implementations need not be
// concurrency-safe; the interface shape, including the advisory
// InstrumentOption mechanism, leaves room for a backend that is.
package metrics

// Provider constructs instruments used to record metrics.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts, such as cycles elapsed or transitions
// taken.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move up or down, such as the number of
// currently READY tasks.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, such as
// observed task-switch delay per preemption.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries optional instrument metadata. It's advisory only;
// a Provider implementation may ignore it entirely.
type InstrumentConfig struct {
	Description string
	Unit        string
	Attributes  map[string]string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g. "cycles").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes attaches static attributes to the instrument.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		if len(attrs) == 0 {
			return
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			c.Attributes[k] = v
		}
	}
}

// ApplyOptions folds opts into an InstrumentConfig. Exported so external
// Provider implementations (e.g. metrics/promprovider) can build their own
// instruments without duplicating the option-folding loop.
func ApplyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
