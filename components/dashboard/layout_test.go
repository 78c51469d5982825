package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testBoardOptions(store Store) BoardOptions {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return BoardOptions{
		Store:  store,
		Logger: log,
		Clock:  func() time.Time { return testNow },
	}
}

func TestNewChartBoardDefaults(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))

	widgets := b.Widgets()
	if len(widgets) != 1 || widgets[0].ID != MainWidgetID {
		t.Fatalf("expected single main widget, got %+v", widgets)
	}
	if !widgets[0].Selection.Has(MetricSpend) {
		t.Fatalf("expected main widget to plot every chart metric")
	}
	row := b.RowLayout()
	if len(row) != 1 || row[0] != MainWidgetID {
		t.Fatalf("expected main in row, got %v", row)
	}
	if len(b.ColumnLayout()) != 0 {
		t.Fatalf("expected empty column, got %v", b.ColumnLayout())
	}
}

func TestAddWidgetCopiesMainSelection(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	if err := b.SetMetric(MainWidgetID, MetricClicks, false); err != nil {
		t.Fatalf("SetMetric: %v", err)
	}

	w := b.AddWidget()
	if w.ID != "chart-2" {
		t.Fatalf("expected chart-2, got %s", w.ID)
	}
	if w.Selection.Has(MetricClicks) {
		t.Fatalf("expected copy of main selection without clicks")
	}
	column := b.ColumnLayout()
	if len(column) != 1 || column[0] != "chart-2" {
		t.Fatalf("expected new widget in column, got %v", column)
	}
}

func TestAddWidgetNeverRecyclesIDs(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	b.AddWidget() // chart-2
	b.AddWidget() // chart-3
	if err := b.DeleteWidget("chart-2"); err != nil {
		t.Fatalf("DeleteWidget: %v", err)
	}

	w := b.AddWidget()
	if w.ID != "chart-4" {
		t.Fatalf("expected chart-4 after deleting chart-2, got %s", w.ID)
	}
}

func TestDeleteWidgetRules(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	if err := b.DeleteWidget(MainWidgetID); !errors.Is(err, ErrMainWidget) {
		t.Fatalf("expected ErrMainWidget, got %v", err)
	}
	if err := b.DeleteWidget("chart-9"); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}

	w := b.AddWidget()
	if err := b.DeleteWidget(w.ID); err != nil {
		t.Fatalf("DeleteWidget: %v", err)
	}
	if _, ok := b.Widget(w.ID); ok {
		t.Fatalf("widget survived deletion")
	}
	if containsID(b.ColumnLayout(), w.ID) {
		t.Fatalf("layout kept deleted widget")
	}
}

func TestMoveBetweenLayouts(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	w := b.AddWidget()

	if err := b.MoveToRow(w.ID); err != nil {
		t.Fatalf("MoveToRow: %v", err)
	}
	row := b.RowLayout()
	if len(row) != 2 || row[1] != w.ID {
		t.Fatalf("expected widget appended to row, got %v", row)
	}

	if err := b.MoveToColumn(w.ID); err != nil {
		t.Fatalf("MoveToColumn: %v", err)
	}
	column := b.ColumnLayout()
	if len(column) != 1 || column[0] != w.ID {
		t.Fatalf("expected widget at top of column, got %v", column)
	}
}

func TestMoveValidation(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))

	if err := b.MoveToColumn(MainWidgetID); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for main, got %v", err)
	}
	if err := b.MoveToRow(MainWidgetID); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for widget not in column, got %v", err)
	}

	// Fill the row: main plus two moved widgets.
	w2, w3, w4 := b.AddWidget(), b.AddWidget(), b.AddWidget()
	if err := b.MoveToRow(w2.ID); err != nil {
		t.Fatalf("MoveToRow w2: %v", err)
	}
	if err := b.MoveToRow(w3.ID); err != nil {
		t.Fatalf("MoveToRow w3: %v", err)
	}
	if err := b.MoveToRow(w4.ID); !errors.Is(err, ErrRowFull) {
		t.Fatalf("expected ErrRowFull, got %v", err)
	}
	if !containsID(b.ColumnLayout(), w4.ID) {
		t.Fatalf("rejected move should leave widget in column")
	}
}

func TestBoardRehydratesFromStore(t *testing.T) {
	store := NewMemoryStore()
	b := NewChartBoard(testBoardOptions(store))
	w := b.AddWidget()
	if err := b.SetMetric(w.ID, MetricProfit, false); err != nil {
		t.Fatalf("SetMetric: %v", err)
	}
	b.SetCollapsed(true)

	again := NewChartBoard(testBoardOptions(store))
	got, ok := again.Widget(w.ID)
	if !ok {
		t.Fatalf("expected widget %s after rehydrate", w.ID)
	}
	if got.Selection.Has(MetricProfit) {
		t.Fatalf("expected profit disabled after rehydrate")
	}
	if !again.Collapsed() {
		t.Fatalf("expected collapsed flag to survive")
	}
}

func TestReconcilePrunesStaleLayout(t *testing.T) {
	store := NewMemoryStore()
	saveJSON(store, KeyChartRow, []string{"ghost", MainWidgetID, MainWidgetID}, logrus.StandardLogger())
	saveJSON(store, KeyChartColumn, []string{"ghost", MainWidgetID}, logrus.StandardLogger())

	b := NewChartBoard(testBoardOptions(store))
	row := b.RowLayout()
	if len(row) != 1 || row[0] != MainWidgetID {
		t.Fatalf("expected pruned row [main], got %v", row)
	}
	if len(b.ColumnLayout()) != 0 {
		t.Fatalf("expected pruned column, got %v", b.ColumnLayout())
	}
}

func TestReconcilePlacesUnplacedWidgets(t *testing.T) {
	store := NewMemoryStore()
	b := NewChartBoard(testBoardOptions(store))
	w := b.AddWidget()
	// Simulate a stale layout that lost the widget's placement.
	saveJSON(store, KeyChartColumn, []string{}, logrus.StandardLogger())

	again := NewChartBoard(testBoardOptions(store))
	if !containsID(again.ColumnLayout(), w.ID) {
		t.Fatalf("expected unplaced widget appended to column, got %v", again.ColumnLayout())
	}
}

func TestChartPresetsAppendAndShadow(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	if _, err := b.SavePreset("  "); !errors.Is(err, ErrEmptyPresetName) {
		t.Fatalf("expected ErrEmptyPresetName, got %v", err)
	}

	first, err := b.SavePreset("mine")
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	b.AddWidget()
	if _, err := b.SavePreset("mine"); err != nil {
		t.Fatalf("SavePreset duplicate: %v", err)
	}
	if len(b.Presets()) != 2 {
		t.Fatalf("expected both snapshots kept, got %d", len(b.Presets()))
	}

	// Applying resolves to the oldest snapshot.
	if err := b.ApplyPreset("mine"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if len(b.Widgets()) != len(first.Widgets) {
		t.Fatalf("expected oldest snapshot applied")
	}

	if err := b.DeletePreset("mine"); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if len(b.Presets()) != 0 {
		t.Fatalf("expected every snapshot with the name removed")
	}
	if err := b.DeletePreset("mine"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestResetToDefaultKeepsPresets(t *testing.T) {
	b := NewChartBoard(testBoardOptions(NewMemoryStore()))
	b.AddWidget()
	if _, err := b.SavePreset("keep"); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	b.ResetToDefault()
	if len(b.Widgets()) != 1 {
		t.Fatalf("expected reset to single widget, got %d", len(b.Widgets()))
	}
	if len(b.Presets()) != 1 {
		t.Fatalf("expected presets to survive reset")
	}
}

func TestSetCollapsedSignalsPeers(t *testing.T) {
	hub := NewSignalHub()
	opts := testBoardOptions(NewMemoryStore())
	opts.Hub = hub
	b := NewChartBoard(opts)

	events, cancel := hub.Subscribe(KeyChartsCollapsed)
	defer cancel()

	b.SetCollapsed(true)
	select {
	case event := <-events:
		if event.Key != KeyChartsCollapsed || string(event.Payload) != "true" {
			t.Fatalf("unexpected event %+v", event)
		}
	default:
		t.Fatalf("expected a collapse event")
	}
}
