package queries

import (
	"context"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

func newTestShell(t *testing.T) *dashboard.Shell {
	t.Helper()
	return dashboard.NewShell(dashboard.ShellOptions{
		Store: dashboard.NewMemoryStore(),
		Clock: func() time.Time { return time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC) },
	})
}

func TestBoardStateQuery(t *testing.T) {
	shell := newTestShell(t)
	w := shell.Board().AddWidget()
	shell.Board().SetCollapsed(true)

	state, err := NewBoardStateQuery(shell.Board()).Query(context.Background(), BoardStateInput{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(state.Widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(state.Widgets))
	}
	if len(state.Row) != 1 || state.Row[0] != dashboard.MainWidgetID {
		t.Fatalf("unexpected row %v", state.Row)
	}
	if len(state.Column) != 1 || state.Column[0] != w.ID {
		t.Fatalf("unexpected column %v", state.Column)
	}
	if !state.Collapsed {
		t.Fatalf("expected collapsed snapshot")
	}
}

func TestRowQueries(t *testing.T) {
	shell := newTestShell(t)
	shell.DrillDown(dashboard.IndividualFilter{Type: dashboard.IndividualByCreator, Value: "Ivan Ivanov"})

	details, err := NewDetailRowsQuery(shell).Query(context.Background(), RowsInput{})
	if err != nil {
		t.Fatalf("detail query: %v", err)
	}
	if len(details) == 0 {
		t.Fatalf("expected detail rows")
	}

	content, err := NewContentRowsQuery(shell).Query(context.Background(), RowsInput{})
	if err != nil {
		t.Fatalf("content query: %v", err)
	}
	for _, row := range content {
		if row.Creator != "Ivan Ivanov" {
			t.Fatalf("drill-down ignored: %+v", row)
		}
	}
}

func TestMetricsAndSummaryQueries(t *testing.T) {
	shell := newTestShell(t)

	metrics, err := NewMetricsQuery(shell).Query(context.Background(), MetricsInput{})
	if err != nil {
		t.Fatalf("metrics query: %v", err)
	}
	if metrics.Current.Clicks == 0 {
		t.Fatalf("expected aggregated clicks")
	}
	if metrics.Previous.Clicks >= metrics.Current.Clicks {
		t.Fatalf("previous period should trail the current one")
	}

	summary, err := NewSummaryQuery(shell).Query(context.Background(), MetricsInput{})
	if err != nil {
		t.Fatalf("summary query: %v", err)
	}
	if summary.Period != "All time" || len(summary.Lines) != 10 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestLabelsQuery(t *testing.T) {
	shell := newTestShell(t)
	if err := shell.SetPreset(dashboard.PresetThisWeek); err != nil {
		t.Fatalf("SetPreset: %v", err)
	}

	axis, err := NewLabelsQuery(shell).Query(context.Background(), LabelsInput{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if axis.Granularity != dashboard.GranularityDay {
		t.Fatalf("expected day buckets, got %s", axis.Granularity)
	}
	if len(axis.Labels) != 7 {
		t.Fatalf("expected Mon..Sun labels, got %v", axis.Labels)
	}
	if axis.Availability.Week || axis.Availability.Month || axis.Availability.Day {
		t.Fatalf("presets lock the granularity picker, got %+v", axis.Availability)
	}
}
