package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Chart layout errors.
var (
	ErrUnknownWidget   = errors.New("dashboard: unknown widget")
	ErrMainWidget      = errors.New("dashboard: main widget cannot be removed")
	ErrRowFull         = errors.New("dashboard: row layout is full")
	ErrInvalidMove     = errors.New("dashboard: widget is not movable from here")
	ErrEmptyPresetName = errors.New("dashboard: preset name required")
	ErrUnknownPreset   = errors.New("dashboard: preset not found")
)

// maxRowWidgets caps the horizontal layout.
const maxRowWidgets = 3

// ChartWidget is one chart instance with its plotted metric set.
type ChartWidget struct {
	ID        string          `json:"id"`
	Selection MetricSelection `json:"metrics"`
}

// ChartPreset is a named snapshot of the whole chart board. Names are not
// unique; applying a duplicate name resolves to the oldest snapshot and
// deleting removes every snapshot with that name.
type ChartPreset struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Widgets []ChartWidget `json:"widgets"`
	Row     []string      `json:"row"`
	Column  []string      `json:"column"`
	SavedAt time.Time     `json:"savedAt"`
}

// BoardOptions configures a ChartBoard. Zero values fall back to an
// in-memory store, a discarding logger and the real clock.
type BoardOptions struct {
	Store  Store
	Hub    *SignalHub
	Logger logrus.FieldLogger
	Clock  func() time.Time
}

func (o *BoardOptions) normalize() {
	if o.Store == nil {
		o.Store = NewMemoryStore()
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

// ChartBoard owns the chart widgets, their split row/column layout, the
// collapse flag and the named presets. It rehydrates from the store on
// construction and writes back after every mutation. Methods are not safe
// for concurrent use; the board models a single viewer session.
type ChartBoard struct {
	store Store
	hub   *SignalHub
	log   logrus.FieldLogger
	clock func() time.Time

	widgets   []ChartWidget
	row       []string
	column    []string
	presets   []ChartPreset
	collapsed bool
}

// NewChartBoard rehydrates a board from opts.Store, repairing any drift
// between the widget list and the layout lists.
func NewChartBoard(opts BoardOptions) *ChartBoard {
	opts.normalize()
	b := &ChartBoard{
		store: opts.Store,
		hub:   opts.Hub,
		log:   opts.Logger,
		clock: opts.Clock,
	}
	b.widgets = loadJSON(b.store, KeyChartWidgets, DefaultChartWidgets(), b.log)
	b.row = loadJSON(b.store, KeyChartRow, []string{MainWidgetID}, b.log)
	b.column = loadJSON(b.store, KeyChartColumn, []string{}, b.log)
	b.presets = loadJSON(b.store, KeyChartPresets, []ChartPreset(nil), b.log)
	b.collapsed = loadJSON(b.store, KeyChartsCollapsed, false, b.log)
	b.reconcile()
	b.persistLayout()
	return b
}

// reconcile repairs the layout lists against the widget list: stale ids are
// pruned, duplicates dropped, the main widget forced into the row, row
// overflow spilled into the column, and unplaced widgets appended to the
// column.
func (b *ChartBoard) reconcile() {
	if _, ok := b.widget(MainWidgetID); !ok {
		b.widgets = append(DefaultChartWidgets(), b.widgets...)
	}
	known := make(map[string]struct{}, len(b.widgets))
	for _, w := range b.widgets {
		known[w.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(b.widgets))
	keep := func(ids []string) []string {
		var out []string
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out
	}

	b.row = keep(b.row)
	b.column = keep(b.column)

	if !containsID(b.row, MainWidgetID) {
		b.row = append([]string{MainWidgetID}, b.row...)
	}
	if len(b.row) > maxRowWidgets {
		b.column = append(b.row[maxRowWidgets:], b.column...)
		b.row = b.row[:maxRowWidgets]
	}
	for _, w := range b.widgets {
		if _, placed := seen[w.ID]; !placed && w.ID != MainWidgetID {
			b.column = append(b.column, w.ID)
		}
	}
}

// Widgets returns a copy of the widget list.
func (b *ChartBoard) Widgets() []ChartWidget {
	out := make([]ChartWidget, len(b.widgets))
	copy(out, b.widgets)
	return out
}

// Widget fetches a widget by id.
func (b *ChartBoard) Widget(id string) (ChartWidget, bool) {
	w, ok := b.widget(id)
	if !ok {
		return ChartWidget{}, false
	}
	return *w, true
}

func (b *ChartBoard) widget(id string) (*ChartWidget, bool) {
	for i := range b.widgets {
		if b.widgets[i].ID == id {
			return &b.widgets[i], true
		}
	}
	return nil, false
}

// RowLayout returns the ordered ids of the horizontal layout.
func (b *ChartBoard) RowLayout() []string {
	out := make([]string, len(b.row))
	copy(out, b.row)
	return out
}

// ColumnLayout returns the ordered ids of the vertical layout.
func (b *ChartBoard) ColumnLayout() []string {
	out := make([]string, len(b.column))
	copy(out, b.column)
	return out
}

// AddWidget creates a new chart that copies the main widget's metric set and
// appends it to the column layout.
func (b *ChartBoard) AddWidget() ChartWidget {
	selection := DefaultMetricSelection()
	if main, ok := b.widget(MainWidgetID); ok {
		selection = main.Selection.clone()
	}
	w := ChartWidget{ID: b.nextWidgetID(), Selection: selection}
	b.widgets = append(b.widgets, w)
	b.column = append(b.column, w.ID)
	b.persistLayout()
	return w
}

// nextWidgetID numbers widgets chart-2, chart-3, ... past the highest id in
// use, so deleting a chart never recycles its identifier.
func (b *ChartBoard) nextWidgetID() string {
	next := 2
	for _, w := range b.widgets {
		n, ok := parseWidgetID(w.ID)
		if ok && n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("chart-%d", next)
}

func parseWidgetID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "chart-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DeleteWidget removes a chart and its layout placement. The main widget is
// not deletable.
func (b *ChartBoard) DeleteWidget(id string) error {
	if id == MainWidgetID {
		return ErrMainWidget
	}
	if _, ok := b.widget(id); !ok {
		return ErrUnknownWidget
	}
	kept := b.widgets[:0]
	for _, w := range b.widgets {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	b.widgets = kept
	b.row = removeID(b.row, id)
	b.column = removeID(b.column, id)
	b.persistLayout()
	return nil
}

// MoveToRow promotes a column widget into the row layout. The move is
// rejected when the widget is not in the column or the row already holds
// three charts.
func (b *ChartBoard) MoveToRow(id string) error {
	if !containsID(b.column, id) {
		return ErrInvalidMove
	}
	if len(b.row) >= maxRowWidgets {
		return ErrRowFull
	}
	b.column = removeID(b.column, id)
	b.row = append(b.row, id)
	b.persistLayout()
	return nil
}

// MoveToColumn demotes a row widget to the top of the column layout. The
// main widget stays in the row.
func (b *ChartBoard) MoveToColumn(id string) error {
	if id == MainWidgetID || !containsID(b.row, id) {
		return ErrInvalidMove
	}
	b.row = removeID(b.row, id)
	b.column = append([]string{id}, b.column...)
	b.persistLayout()
	return nil
}

// SetMetric toggles one metric on a widget's plot.
func (b *ChartBoard) SetMetric(id string, key MetricKey, enabled bool) error {
	w, ok := b.widget(id)
	if !ok {
		return ErrUnknownWidget
	}
	if enabled {
		w.Selection = w.Selection.With(key)
	} else {
		w.Selection = w.Selection.Without(key)
	}
	b.persistWidgets()
	return nil
}

// ClearMetrics empties a widget's plot, the "none" state.
func (b *ChartBoard) ClearMetrics(id string) error {
	w, ok := b.widget(id)
	if !ok {
		return ErrUnknownWidget
	}
	w.Selection = w.Selection.Clear()
	b.persistWidgets()
	return nil
}

// Collapsed reports whether the chart section is folded away.
func (b *ChartBoard) Collapsed() bool { return b.collapsed }

// SetCollapsed persists the fold state and signals peers.
func (b *ChartBoard) SetCollapsed(collapsed bool) {
	b.collapsed = collapsed
	saveJSON(b.store, KeyChartsCollapsed, collapsed, b.log)
	b.signal(KeyChartsCollapsed, collapsed)
}

// SavePreset snapshots the current widgets and layout under name. Duplicate
// names are allowed; the snapshot is appended.
func (b *ChartBoard) SavePreset(name string) (ChartPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ChartPreset{}, ErrEmptyPresetName
	}
	preset := ChartPreset{
		ID:      uuid.NewString(),
		Name:    name,
		Widgets: b.Widgets(),
		Row:     b.RowLayout(),
		Column:  b.ColumnLayout(),
		SavedAt: b.clock(),
	}
	b.presets = append(b.presets, preset)
	b.persistPresets()
	return preset, nil
}

// Presets returns a copy of the saved snapshots.
func (b *ChartBoard) Presets() []ChartPreset {
	out := make([]ChartPreset, len(b.presets))
	copy(out, b.presets)
	return out
}

// ApplyPreset restores the oldest snapshot saved under name.
func (b *ChartBoard) ApplyPreset(name string) error {
	for _, p := range b.presets {
		if p.Name == name {
			b.widgets = append([]ChartWidget(nil), p.Widgets...)
			b.row = append([]string(nil), p.Row...)
			b.column = append([]string(nil), p.Column...)
			b.reconcile()
			b.persistLayout()
			return nil
		}
	}
	return ErrUnknownPreset
}

// DeletePreset removes every snapshot saved under name.
func (b *ChartBoard) DeletePreset(name string) error {
	kept := b.presets[:0]
	removed := false
	for _, p := range b.presets {
		if p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	b.presets = kept
	if !removed {
		return ErrUnknownPreset
	}
	b.persistPresets()
	return nil
}

// ResetToDefault drops every extra chart and restores the main widget with
// all metrics plotted. Saved presets survive.
func (b *ChartBoard) ResetToDefault() {
	b.widgets = DefaultChartWidgets()
	b.row = []string{MainWidgetID}
	b.column = nil
	b.persistLayout()
}

func (b *ChartBoard) persistWidgets() {
	saveJSON(b.store, KeyChartWidgets, b.widgets, b.log)
}

func (b *ChartBoard) persistLayout() {
	b.persistWidgets()
	saveJSON(b.store, KeyChartRow, b.row, b.log)
	saveJSON(b.store, KeyChartColumn, b.column, b.log)
}

func (b *ChartBoard) persistPresets() {
	saveJSON(b.store, KeyChartPresets, b.presets, b.log)
}

func (b *ChartBoard) signal(key string, value any) {
	if b.hub == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	b.hub.Publish(StateEvent{Key: key, Payload: payload})
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
