package dashboard

import (
	"fmt"
	"sync"
)

// MetricDefinition describes one board metric: how it is labelled, which
// unit it carries and the shape of its synthetic series.
type MetricDefinition struct {
	Key        MetricKey  `json:"key" yaml:"key"`
	Label      string     `json:"label" yaml:"label"`
	Unit       MetricUnit `json:"unit" yaml:"unit"`
	Base       float64    `json:"base" yaml:"base"`
	Volatility float64    `json:"volatility" yaml:"volatility"`
	Chartable  bool       `json:"chartable" yaml:"chartable"`
}

// Shape returns the series parameters for the metric.
func (d MetricDefinition) Shape() SeriesShape {
	return SeriesShape{Base: d.Base, Volatility: d.Volatility, Unit: d.Unit}
}

// MetricHook lets packages register metrics during init().
type MetricHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []MetricHook
)

// RegisterMetricHook registers a hook executed against new registries.
func RegisterMetricHook(h MetricHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry holds metric definitions in registration order, with hook and
// manifest support.
type Registry struct {
	mu    sync.RWMutex
	defs  map[MetricKey]MetricDefinition
	order []MetricKey
}

// NewRegistry builds a registry with the default metrics and applies global
// hooks.
func NewRegistry() *Registry {
	reg := &Registry{defs: map[MetricKey]MetricDefinition{}}
	for _, def := range DefaultMetricDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered metric hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores or replaces a metric definition. Re-registering
// a key keeps its original position.
func (r *Registry) RegisterDefinition(def MetricDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("metric definition key is required")
	}
	if def.Label == "" {
		return fmt.Errorf("metric definition %s is missing label", def.Key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Key]; !ok {
		r.order = append(r.order, def.Key)
	}
	r.defs[def.Key] = def
	return nil
}

// Definition fetches a metric definition by key.
func (r *Registry) Definition(key MetricKey) (MetricDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	return def, ok
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []MetricDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]MetricDefinition, 0, len(r.order))
	for _, key := range r.order {
		defs = append(defs, r.defs[key])
	}
	return defs
}

// Keys returns every metric key in registration order.
func (r *Registry) Keys() []MetricKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MetricKey, len(r.order))
	copy(out, r.order)
	return out
}

// ChartableKeys returns the keys a chart widget may plot, in order.
func (r *Registry) ChartableKeys() []MetricKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []MetricKey
	for _, key := range r.order {
		if r.defs[key].Chartable {
			out = append(out, key)
		}
	}
	return out
}
