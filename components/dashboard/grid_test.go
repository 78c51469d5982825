package dashboard

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func testGridCatalog() []ColumnDef {
	return []ColumnDef{
		{ID: "name", Header: "Name", Width: 220},
		{ID: "units", Header: "Units", Width: 90},
		{ID: "spend", Header: "Spend", Width: 110},
	}
}

func TestNewGridAdapterDefaults(t *testing.T) {
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(NewMemoryStore()))

	if g.TableID() != "t1" {
		t.Fatalf("unexpected table id %q", g.TableID())
	}
	if g.RowCount() != RowCountCompact {
		t.Fatalf("expected compact page size, got %s", g.RowCount())
	}
	if g.ViewMode() != ViewByProduct {
		t.Fatalf("expected product view, got %s", g.ViewMode())
	}
	cols := g.VisibleColumns()
	if len(cols) != 3 || cols[0].ID != "name" || cols[0].Width != 220 {
		t.Fatalf("unexpected visible columns %+v", cols)
	}
}

func TestGridColumnAdjustments(t *testing.T) {
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(NewMemoryStore()))

	g.SetColumnVisible("units", false)
	if g.ColumnVisible("units") {
		t.Fatalf("expected units hidden")
	}
	g.SetColumnWidth("spend", 150)
	g.SetColumnWidth("spend", -10) // ignored
	g.MoveColumn("spend", 0)

	cols := g.VisibleColumns()
	if len(cols) != 2 || cols[0].ID != "spend" || cols[0].Width != 150 {
		t.Fatalf("unexpected visible columns %+v", cols)
	}

	// Unknown columns are ignored.
	g.SetColumnVisible("bogus", true)
	g.SetColumnWidth("bogus", 80)
	g.MoveColumn("bogus", 0)
	if g.ColumnVisible("bogus") {
		t.Fatalf("unknown column entered the state")
	}
}

func TestGridRehydratesPerTable(t *testing.T) {
	store := NewMemoryStore()
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(store))
	g.SetColumnVisible("name", false)
	g.SetRowCount(RowCountFull)
	g.SetCollapsed(true)

	again := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(store))
	if again.ColumnVisible("name") {
		t.Fatalf("expected hidden column after rehydrate")
	}
	if again.RowCount() != RowCountFull {
		t.Fatalf("expected full page size after rehydrate")
	}
	if !again.Collapsed() {
		t.Fatalf("expected collapsed after rehydrate")
	}

	// A different table id sees none of it.
	other := NewGridAdapter("t2", testGridCatalog(), testBoardOptions(store))
	if !other.ColumnVisible("name") || other.Collapsed() {
		t.Fatalf("state leaked across table ids")
	}
}

func TestGridViewModeNotPersisted(t *testing.T) {
	store := NewMemoryStore()
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(store))
	g.SetViewMode(ViewByCreator)
	g.SetViewMode(ViewMode("bogus"))
	if g.ViewMode() != ViewByCreator {
		t.Fatalf("expected creator view, got %s", g.ViewMode())
	}

	again := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(store))
	if again.ViewMode() != ViewByProduct {
		t.Fatalf("view mode should reset per session")
	}
}

func TestGridReconcileAgainstCatalog(t *testing.T) {
	store := NewMemoryStore()
	state := ColumnState{
		Visibility: map[string]bool{"gone": true, "units": false},
		Widths:     map[string]int{"gone": 50, "units": 77},
		Order:      []string{"gone", "units"},
	}
	saveJSON(store, GridColumnsKey("t1"), state, logrus.StandardLogger())
	saveJSON(store, GridRowsKey("t1"), RowCount("42"), logrus.StandardLogger())

	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(store))
	st := g.State()
	if _, ok := st.Visibility["gone"]; ok {
		t.Fatalf("dropped column survived reconcile")
	}
	if st.Order[0] != "units" {
		t.Fatalf("expected stored order kept, got %v", st.Order)
	}
	if len(st.Order) != 3 {
		t.Fatalf("expected new catalog columns slotted in, got %v", st.Order)
	}
	if !st.Visibility["name"] || st.Widths["name"] != 220 {
		t.Fatalf("new column should default to visible at catalog width")
	}
	if g.RowCount() != RowCountCompact {
		t.Fatalf("invalid page size should fall back to compact")
	}
}

func TestGridPresetsOverwriteByName(t *testing.T) {
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(NewMemoryStore()))
	if _, err := g.SavePreset(" "); !errors.Is(err, ErrEmptyPresetName) {
		t.Fatalf("expected ErrEmptyPresetName, got %v", err)
	}

	g.SetColumnVisible("units", false)
	if _, err := g.SavePreset("narrow"); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	g.SetColumnVisible("units", true)
	if _, err := g.SavePreset("narrow"); err != nil {
		t.Fatalf("SavePreset overwrite: %v", err)
	}
	if len(g.Presets()) != 1 {
		t.Fatalf("expected one preset per name, got %d", len(g.Presets()))
	}

	g.SetColumnVisible("units", false)
	if err := g.ApplyPreset("narrow"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if !g.ColumnVisible("units") {
		t.Fatalf("expected latest snapshot applied")
	}

	if err := g.DeletePreset("narrow"); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if err := g.ApplyPreset("narrow"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestGridResetToDefault(t *testing.T) {
	g := NewGridAdapter("t1", testGridCatalog(), testBoardOptions(NewMemoryStore()))
	g.SetColumnVisible("spend", false)
	g.SetColumnWidth("name", 300)
	if _, err := g.SavePreset("keep"); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	g.ResetToDefault()
	if !g.ColumnVisible("spend") {
		t.Fatalf("expected default visibility restored")
	}
	if g.State().Widths["name"] != 220 {
		t.Fatalf("expected default widths restored")
	}
	if len(g.Presets()) != 1 {
		t.Fatalf("presets must survive a reset")
	}
}
