package dashboard

import "encoding/json"

// ChartMetrics is the canonical order of metrics a chart widget may plot.
var ChartMetrics = []MetricKey{
	MetricSpend,
	MetricProfit,
	MetricUnits,
	MetricClicks,
	MetricConversion,
	MetricTotalExpenses,
}

// MetricSelection is the set of metrics a widget plots. The empty set is the
// "none" state; there is no separate flag to keep in sync.
type MetricSelection struct {
	enabled map[MetricKey]struct{}
}

// DefaultMetricSelection enables every chartable metric.
func DefaultMetricSelection() MetricSelection {
	s := MetricSelection{enabled: make(map[MetricKey]struct{}, len(ChartMetrics))}
	for _, k := range ChartMetrics {
		s.enabled[k] = struct{}{}
	}
	return s
}

// NewMetricSelection builds a selection from the given keys, ignoring
// anything outside the chartable set.
func NewMetricSelection(keys ...MetricKey) MetricSelection {
	s := MetricSelection{enabled: make(map[MetricKey]struct{}, len(keys))}
	for _, k := range keys {
		if chartable(k) {
			s.enabled[k] = struct{}{}
		}
	}
	return s
}

func chartable(k MetricKey) bool {
	for _, c := range ChartMetrics {
		if c == k {
			return true
		}
	}
	return false
}

// Has reports whether k is plotted.
func (s MetricSelection) Has(k MetricKey) bool {
	_, ok := s.enabled[k]
	return ok
}

// None reports whether nothing is plotted.
func (s MetricSelection) None() bool {
	return len(s.enabled) == 0
}

// Keys returns the enabled metrics in canonical chart order.
func (s MetricSelection) Keys() []MetricKey {
	var out []MetricKey
	for _, k := range ChartMetrics {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// With returns a copy with k enabled.
func (s MetricSelection) With(k MetricKey) MetricSelection {
	if !chartable(k) {
		return s.clone()
	}
	next := s.clone()
	next.enabled[k] = struct{}{}
	return next
}

// Without returns a copy with k disabled.
func (s MetricSelection) Without(k MetricKey) MetricSelection {
	next := s.clone()
	delete(next.enabled, k)
	return next
}

// Clear returns the empty selection.
func (s MetricSelection) Clear() MetricSelection {
	return MetricSelection{enabled: make(map[MetricKey]struct{})}
}

func (s MetricSelection) clone() MetricSelection {
	next := MetricSelection{enabled: make(map[MetricKey]struct{}, len(s.enabled))}
	for k := range s.enabled {
		next.enabled[k] = struct{}{}
	}
	return next
}

// MarshalJSON encodes the selection as an ordered key list.
func (s MetricSelection) MarshalJSON() ([]byte, error) {
	keys := s.Keys()
	if keys == nil {
		keys = []MetricKey{}
	}
	return json.Marshal(keys)
}

// UnmarshalJSON restores a selection from a key list, dropping unknown keys.
func (s *MetricSelection) UnmarshalJSON(data []byte) error {
	var keys []MetricKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewMetricSelection(keys...)
	return nil
}
