package dashboard

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TilePreset is a named snapshot of tile visibility and order. Same
// duplicate-name semantics as chart presets.
type TilePreset struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Visible []MetricKey `json:"visible"`
	Order   []MetricKey `json:"order"`
	SavedAt time.Time   `json:"savedAt"`
}

// TileBar owns the summary tile strip: which metrics show, their order and
// the saved presets. Order always holds every metric; hidden tiles keep
// their slot so toggling one back on restores its place.
type TileBar struct {
	store Store
	log   logrus.FieldLogger
	clock func() time.Time

	visible map[MetricKey]struct{}
	order   []MetricKey
	presets []TilePreset
}

// NewTileBar rehydrates the tile strip from the store.
func NewTileBar(opts BoardOptions) *TileBar {
	opts.normalize()
	t := &TileBar{
		store: opts.Store,
		log:   opts.Logger,
		clock: opts.Clock,
	}
	visible := loadJSON(t.store, KeyTilesVisible, TileMetrics(), t.log)
	t.visible = make(map[MetricKey]struct{}, len(visible))
	for _, k := range visible {
		t.visible[k] = struct{}{}
	}
	t.order = loadJSON(t.store, KeyTilesOrder, TileMetrics(), t.log)
	t.presets = loadJSON(t.store, KeyTilesPresets, []TilePreset(nil), t.log)
	t.reconcile()
	return t
}

// reconcile drops unknown keys and appends missing catalog keys to the end
// of the order.
func (t *TileBar) reconcile() {
	catalog := TileMetrics()
	known := make(map[MetricKey]struct{}, len(catalog))
	for _, k := range catalog {
		known[k] = struct{}{}
	}

	seen := make(map[MetricKey]struct{}, len(t.order))
	var order []MetricKey
	for _, k := range t.order {
		if _, ok := known[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		order = append(order, k)
	}
	for _, k := range catalog {
		if _, ok := seen[k]; !ok {
			order = append(order, k)
		}
	}
	t.order = order

	for k := range t.visible {
		if _, ok := known[k]; !ok {
			delete(t.visible, k)
		}
	}
}

// Visible reports whether the tile for key shows.
func (t *TileBar) Visible(key MetricKey) bool {
	_, ok := t.visible[key]
	return ok
}

// VisibleOrdered returns the shown tiles in display order.
func (t *TileBar) VisibleOrdered() []MetricKey {
	var out []MetricKey
	for _, k := range t.order {
		if t.Visible(k) {
			out = append(out, k)
		}
	}
	return out
}

// Order returns a copy of the full tile order, hidden tiles included.
func (t *TileBar) Order() []MetricKey {
	out := make([]MetricKey, len(t.order))
	copy(out, t.order)
	return out
}

// Toggle shows or hides a tile. The slot in the order is kept either way.
func (t *TileBar) Toggle(key MetricKey, show bool) {
	if !containsKey(t.order, key) {
		return
	}
	if show {
		t.visible[key] = struct{}{}
	} else {
		delete(t.visible, key)
	}
	t.persist()
}

// Reorder moves the visible tile at position from to position to. Positions
// index the visible sequence; hidden tiles are re-slotted after the visible
// ones, keeping their relative order.
func (t *TileBar) Reorder(from, to int) {
	visible := t.VisibleOrdered()
	if from < 0 || from >= len(visible) || to < 0 || to >= len(visible) || from == to {
		return
	}
	moved := visible[from]
	visible = append(visible[:from], visible[from+1:]...)
	visible = append(visible[:to], append([]MetricKey{moved}, visible[to:]...)...)

	var hidden []MetricKey
	for _, k := range t.order {
		if !t.Visible(k) {
			hidden = append(hidden, k)
		}
	}
	t.order = append(visible, hidden...)
	t.persist()
}

// SavePreset snapshots visibility and order under name.
func (t *TileBar) SavePreset(name string) (TilePreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TilePreset{}, ErrEmptyPresetName
	}
	preset := TilePreset{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: t.VisibleOrdered(),
		Order:   t.Order(),
		SavedAt: t.clock(),
	}
	t.presets = append(t.presets, preset)
	saveJSON(t.store, KeyTilesPresets, t.presets, t.log)
	return preset, nil
}

// Presets returns a copy of the saved snapshots.
func (t *TileBar) Presets() []TilePreset {
	out := make([]TilePreset, len(t.presets))
	copy(out, t.presets)
	return out
}

// ApplyPreset restores the oldest snapshot saved under name.
func (t *TileBar) ApplyPreset(name string) error {
	for _, p := range t.presets {
		if p.Name == name {
			t.visible = make(map[MetricKey]struct{}, len(p.Visible))
			for _, k := range p.Visible {
				t.visible[k] = struct{}{}
			}
			t.order = append([]MetricKey(nil), p.Order...)
			t.reconcile()
			t.persist()
			return nil
		}
	}
	return ErrUnknownPreset
}

// DeletePreset removes every snapshot saved under name.
func (t *TileBar) DeletePreset(name string) error {
	kept := t.presets[:0]
	removed := false
	for _, p := range t.presets {
		if p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	t.presets = kept
	if !removed {
		return ErrUnknownPreset
	}
	saveJSON(t.store, KeyTilesPresets, t.presets, t.log)
	return nil
}

// ResetToDefault shows every tile in catalog order. Saved presets survive.
func (t *TileBar) ResetToDefault() {
	t.order = TileMetrics()
	t.visible = make(map[MetricKey]struct{}, len(t.order))
	for _, k := range t.order {
		t.visible[k] = struct{}{}
	}
	t.persist()
}

func (t *TileBar) persist() {
	saveJSON(t.store, KeyTilesVisible, t.VisibleOrdered(), t.log)
	saveJSON(t.store, KeyTilesOrder, t.order, t.log)
}

func containsKey(keys []MetricKey, key MetricKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
