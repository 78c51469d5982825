package dashboard

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ColumnDef is one column of a grid catalog.
type ColumnDef struct {
	ID     string `json:"id"`
	Header string `json:"header"`
	Width  int    `json:"width"`
}

// RowCount is the per-table page size preference.
type RowCount string

const (
	RowCountCompact RowCount = "20"
	RowCountFull    RowCount = "100"
)

// ViewMode switches the leading dimension of the details grid.
type ViewMode string

const (
	ViewByProduct ViewMode = "product"
	ViewByCreator ViewMode = "creator"
)

// ColumnState is the adjustable part of a grid: which columns show, their
// widths and their order.
type ColumnState struct {
	Visibility map[string]bool `json:"visibility"`
	Widths     map[string]int  `json:"widths"`
	Order      []string        `json:"order"`
}

// GridPreset is a named column-state snapshot. Unlike chart presets these
// live in a map, so saving under an existing name overwrites it.
type GridPreset struct {
	Name    string      `json:"name"`
	State   ColumnState `json:"state"`
	SavedAt time.Time   `json:"savedAt"`
}

// GridAdapter owns the persisted view state of one grid: column visibility,
// widths and order, the page-size preference, the collapse flag and the
// named presets. Construction rehydrates from the store under keys derived
// from the table id.
type GridAdapter struct {
	tableID string
	store   Store
	log     logrus.FieldLogger
	clock   func() time.Time

	catalog   []ColumnDef
	state     ColumnState
	rowCount  RowCount
	collapsed bool
	viewMode  ViewMode
	presets   map[string]GridPreset
}

// NewGridAdapter rehydrates the view state for tableID over the given
// column catalog.
func NewGridAdapter(tableID string, catalog []ColumnDef, opts BoardOptions) *GridAdapter {
	opts.normalize()
	g := &GridAdapter{
		tableID:  tableID,
		store:    opts.Store,
		log:      opts.Logger,
		clock:    opts.Clock,
		catalog:  append([]ColumnDef(nil), catalog...),
		viewMode: ViewByProduct,
	}
	g.state = loadJSON(g.store, GridColumnsKey(tableID), g.defaultState(), g.log)
	g.rowCount = loadJSON(g.store, GridRowsKey(tableID), RowCountCompact, g.log)
	g.collapsed = loadJSON(g.store, GridCollapsedKey(tableID), false, g.log)
	g.presets = loadJSON(g.store, GridPresetsKey(tableID), map[string]GridPreset{}, g.log)
	g.reconcile()
	return g
}

func (g *GridAdapter) defaultState() ColumnState {
	state := ColumnState{
		Visibility: make(map[string]bool, len(g.catalog)),
		Widths:     make(map[string]int, len(g.catalog)),
		Order:      make([]string, 0, len(g.catalog)),
	}
	for _, col := range g.catalog {
		state.Visibility[col.ID] = true
		state.Widths[col.ID] = col.Width
		state.Order = append(state.Order, col.ID)
	}
	return state
}

// reconcile drops state for columns no longer in the catalog and slots new
// catalog columns in as visible at their default width.
func (g *GridAdapter) reconcile() {
	defaults := g.defaultState()
	if g.state.Visibility == nil {
		g.state.Visibility = map[string]bool{}
	}
	if g.state.Widths == nil {
		g.state.Widths = map[string]int{}
	}
	known := make(map[string]struct{}, len(g.catalog))
	for _, col := range g.catalog {
		known[col.ID] = struct{}{}
	}
	for id := range g.state.Visibility {
		if _, ok := known[id]; !ok {
			delete(g.state.Visibility, id)
		}
	}
	for id := range g.state.Widths {
		if _, ok := known[id]; !ok {
			delete(g.state.Widths, id)
		}
	}
	seen := make(map[string]struct{}, len(g.state.Order))
	var order []string
	for _, id := range g.state.Order {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}
	for _, id := range defaults.Order {
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
	}
	g.state.Order = order
	for _, col := range g.catalog {
		if _, ok := g.state.Visibility[col.ID]; !ok {
			g.state.Visibility[col.ID] = true
		}
		if _, ok := g.state.Widths[col.ID]; !ok {
			g.state.Widths[col.ID] = col.Width
		}
	}
	if g.rowCount != RowCountCompact && g.rowCount != RowCountFull {
		g.rowCount = RowCountCompact
	}
	if g.presets == nil {
		g.presets = map[string]GridPreset{}
	}
}

// TableID returns the grid identifier.
func (g *GridAdapter) TableID() string { return g.tableID }

// Columns returns the catalog.
func (g *GridAdapter) Columns() []ColumnDef {
	out := make([]ColumnDef, len(g.catalog))
	copy(out, g.catalog)
	return out
}

// ColumnVisible reports whether the column shows.
func (g *GridAdapter) ColumnVisible(id string) bool {
	return g.state.Visibility[id]
}

// SetColumnVisible shows or hides a column.
func (g *GridAdapter) SetColumnVisible(id string, visible bool) {
	if _, ok := g.state.Visibility[id]; !ok {
		return
	}
	g.state.Visibility[id] = visible
	g.persistState()
}

// SetColumnWidth stores a column width in pixels.
func (g *GridAdapter) SetColumnWidth(id string, width int) {
	if _, ok := g.state.Widths[id]; !ok || width <= 0 {
		return
	}
	g.state.Widths[id] = width
	g.persistState()
}

// MoveColumn shifts a column to a new position in the order.
func (g *GridAdapter) MoveColumn(id string, to int) {
	from := -1
	for i, v := range g.state.Order {
		if v == id {
			from = i
			break
		}
	}
	if from < 0 || to < 0 || to >= len(g.state.Order) || from == to {
		return
	}
	order := append([]string(nil), g.state.Order...)
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]string{id}, order[to:]...)...)
	g.state.Order = order
	g.persistState()
}

// State returns a deep copy of the column state.
func (g *GridAdapter) State() ColumnState {
	return cloneColumnState(g.state)
}

// VisibleColumns returns the shown columns in display order.
func (g *GridAdapter) VisibleColumns() []ColumnDef {
	byID := make(map[string]ColumnDef, len(g.catalog))
	for _, col := range g.catalog {
		byID[col.ID] = col
	}
	var out []ColumnDef
	for _, id := range g.state.Order {
		if !g.state.Visibility[id] {
			continue
		}
		col := byID[id]
		if w := g.state.Widths[id]; w > 0 {
			col.Width = w
		}
		out = append(out, col)
	}
	return out
}

// RowCount returns the page-size preference.
func (g *GridAdapter) RowCount() RowCount { return g.rowCount }

// SetRowCount stores the page-size preference.
func (g *GridAdapter) SetRowCount(rc RowCount) {
	if rc != RowCountCompact && rc != RowCountFull {
		return
	}
	g.rowCount = rc
	saveJSON(g.store, GridRowsKey(g.tableID), rc, g.log)
}

// Collapsed reports whether the grid section is folded away.
func (g *GridAdapter) Collapsed() bool { return g.collapsed }

// SetCollapsed persists the fold state.
func (g *GridAdapter) SetCollapsed(collapsed bool) {
	g.collapsed = collapsed
	saveJSON(g.store, GridCollapsedKey(g.tableID), collapsed, g.log)
}

// ViewMode returns the leading dimension. Not persisted; a fresh session
// starts by product.
func (g *GridAdapter) ViewMode() ViewMode { return g.viewMode }

// SetViewMode switches the leading dimension.
func (g *GridAdapter) SetViewMode(mode ViewMode) {
	if mode != ViewByProduct && mode != ViewByCreator {
		return
	}
	g.viewMode = mode
}

// SavePreset snapshots the column state under name, overwriting any
// existing preset with that name.
func (g *GridAdapter) SavePreset(name string) (GridPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GridPreset{}, ErrEmptyPresetName
	}
	preset := GridPreset{
		Name:    name,
		State:   cloneColumnState(g.state),
		SavedAt: g.clock(),
	}
	g.presets[name] = preset
	g.persistPresets()
	return preset, nil
}

// Presets returns a copy of the preset map.
func (g *GridAdapter) Presets() map[string]GridPreset {
	out := make(map[string]GridPreset, len(g.presets))
	for name, p := range g.presets {
		out[name] = p
	}
	return out
}

// ApplyPreset restores the named snapshot.
func (g *GridAdapter) ApplyPreset(name string) error {
	preset, ok := g.presets[name]
	if !ok {
		return ErrUnknownPreset
	}
	g.state = cloneColumnState(preset.State)
	g.reconcile()
	g.persistState()
	return nil
}

// DeletePreset removes the named snapshot.
func (g *GridAdapter) DeletePreset(name string) error {
	if _, ok := g.presets[name]; !ok {
		return ErrUnknownPreset
	}
	delete(g.presets, name)
	g.persistPresets()
	return nil
}

// ResetToDefault restores the catalog defaults. Saved presets survive.
func (g *GridAdapter) ResetToDefault() {
	g.state = g.defaultState()
	g.persistState()
}

func (g *GridAdapter) persistState() {
	saveJSON(g.store, GridColumnsKey(g.tableID), g.state, g.log)
}

func (g *GridAdapter) persistPresets() {
	saveJSON(g.store, GridPresetsKey(g.tableID), g.presets, g.log)
}

func cloneColumnState(s ColumnState) ColumnState {
	out := ColumnState{
		Visibility: make(map[string]bool, len(s.Visibility)),
		Widths:     make(map[string]int, len(s.Widths)),
		Order:      append([]string(nil), s.Order...),
	}
	for k, v := range s.Visibility {
		out.Visibility[k] = v
	}
	for k, v := range s.Widths {
		out.Widths[k] = v
	}
	return out
}
