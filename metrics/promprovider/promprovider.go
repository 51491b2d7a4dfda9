// Package promprovider implements metrics.Provider on top of
// github.com/prometheus/client_golang/prometheus. It is the "real backend"
// the engine's Provider interface is designed to be swapped for; the engine
// itself only ever talks to metrics.Provider.
package promprovider

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sugim0t0/P3S/metrics"
)

// Provider registers a CounterVec/GaugeVec/HistogramVec per instrument name
// on first use and reuses it thereafter, keyed by the attributes passed at
// instrument-construction time.
type Provider struct {
	registry *prometheus.Registry

	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// New constructs a Provider that registers its instruments on reg.
func New(reg *prometheus.Registry) *Provider {
	return &Provider{
		registry:   reg,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func labelNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	return names
}

// Counter implements metrics.Provider.
func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	cfg := metrics.ApplyOptions(opts)
	vec, ok := p.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: cfg.Description,
		}, labelNames(cfg.Attributes))
		p.registry.MustRegister(vec)
		p.counters[name] = vec
	}
	return &promCounter{c: vec.With(cfg.Attributes)}
}

// UpDownCounter implements metrics.Provider using a GaugeVec, since
// Prometheus has no native up/down-counter instrument.
func (p *Provider) UpDownCounter(name string, opts ...metrics.InstrumentOption) metrics.UpDownCounter {
	cfg := metrics.ApplyOptions(opts)
	vec, ok := p.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: name,
			Help: cfg.Description,
		}, labelNames(cfg.Attributes))
		p.registry.MustRegister(vec)
		p.gauges[name] = vec
	}
	return &promUpDownCounter{g: vec.With(cfg.Attributes)}
}

// Histogram implements metrics.Provider.
func (p *Provider) Histogram(name string, opts ...metrics.InstrumentOption) metrics.Histogram {
	cfg := metrics.ApplyOptions(opts)
	vec, ok := p.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: name,
			Help: cfg.Description,
		}, labelNames(cfg.Attributes))
		p.registry.MustRegister(vec)
		p.histograms[name] = vec
	}
	return &promHistogram{h: vec.With(cfg.Attributes)}
}

type promCounter struct{ c prometheus.Counter }

func (p *promCounter) Add(n int64) { p.c.Add(float64(n)) }

type promUpDownCounter struct{ g prometheus.Gauge }

func (p *promUpDownCounter) Add(n int64) { p.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Observer }

func (p *promHistogram) Record(v float64) { p.h.Observe(v) }
