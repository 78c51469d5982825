package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// boardService is the slice of the chart board the layout commands need.
type boardService interface {
	AddWidget() dashboard.ChartWidget
	DeleteWidget(id string) error
	MoveToRow(id string) error
	MoveToColumn(id string) error
	SetMetric(id string, key dashboard.MetricKey, enabled bool) error
	ClearMetrics(id string) error
	SetCollapsed(collapsed bool)
}

// AddChartInput requests a new chart widget.
type AddChartInput struct{}

// AddChartCommand creates a chart that copies the main widget's metrics and
// lands at the bottom of the column layout.
type AddChartCommand struct {
	board     boardService
	telemetry Telemetry
}

// NewAddChartCommand creates the command.
func NewAddChartCommand(board boardService, telemetry Telemetry) *AddChartCommand {
	return &AddChartCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddChartInput] = (*AddChartCommand)(nil)

// Execute adds the widget and records its id.
func (c *AddChartCommand) Execute(ctx context.Context, _ AddChartInput) error {
	if c.board == nil {
		return errors.New("add chart command requires board")
	}
	w := c.board.AddWidget()
	c.telemetry.Record(ctx, "board.chart.add", map[string]any{"widget_id": w.ID})
	return nil
}

// RemoveChartInput identifies the chart to delete.
type RemoveChartInput struct {
	WidgetID string `json:"widget_id"`
}

// RemoveChartCommand deletes a chart widget.
type RemoveChartCommand struct {
	board     boardService
	telemetry Telemetry
}

// NewRemoveChartCommand creates the command.
func NewRemoveChartCommand(board boardService, telemetry Telemetry) *RemoveChartCommand {
	return &RemoveChartCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveChartInput] = (*RemoveChartCommand)(nil)

// Execute delegates to the board.
func (c *RemoveChartCommand) Execute(ctx context.Context, msg RemoveChartInput) error {
	if c.board == nil {
		return errors.New("remove chart command requires board")
	}
	if err := c.board.DeleteWidget(msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.chart.remove", map[string]any{"widget_id": msg.WidgetID})
	return nil
}

// MoveTarget names the layout a chart moves into.
type MoveTarget string

const (
	MoveTargetRow    MoveTarget = "row"
	MoveTargetColumn MoveTarget = "column"
)

// MoveChartInput moves a chart between the row and column layouts.
type MoveChartInput struct {
	WidgetID string     `json:"widget_id"`
	Target   MoveTarget `json:"target"`
}

// MoveChartCommand moves a chart between layouts.
type MoveChartCommand struct {
	board     boardService
	telemetry Telemetry
}

// NewMoveChartCommand creates the command.
func NewMoveChartCommand(board boardService, telemetry Telemetry) *MoveChartCommand {
	return &MoveChartCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveChartInput] = (*MoveChartCommand)(nil)

// Execute validates the target and delegates to the board.
func (c *MoveChartCommand) Execute(ctx context.Context, msg MoveChartInput) error {
	if c.board == nil {
		return errors.New("move chart command requires board")
	}
	var err error
	switch msg.Target {
	case MoveTargetRow:
		err = c.board.MoveToRow(msg.WidgetID)
	case MoveTargetColumn:
		err = c.board.MoveToColumn(msg.WidgetID)
	default:
		return errors.New("move chart command requires target row or column")
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.chart.move", map[string]any{
		"widget_id": msg.WidgetID,
		"target":    string(msg.Target),
	})
	return nil
}

// ToggleMetricInput flips one metric on a chart's plot. Clear drops the
// whole selection instead.
type ToggleMetricInput struct {
	WidgetID string              `json:"widget_id"`
	Metric   dashboard.MetricKey `json:"metric,omitempty"`
	Enabled  bool                `json:"enabled"`
	Clear    bool                `json:"clear,omitempty"`
}

// ToggleMetricCommand updates a chart's metric selection.
type ToggleMetricCommand struct {
	board     boardService
	telemetry Telemetry
}

// NewToggleMetricCommand creates the command.
func NewToggleMetricCommand(board boardService, telemetry Telemetry) *ToggleMetricCommand {
	return &ToggleMetricCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleMetricInput] = (*ToggleMetricCommand)(nil)

// Execute delegates to the board.
func (c *ToggleMetricCommand) Execute(ctx context.Context, msg ToggleMetricInput) error {
	if c.board == nil {
		return errors.New("toggle metric command requires board")
	}
	if msg.Clear {
		if err := c.board.ClearMetrics(msg.WidgetID); err != nil {
			return err
		}
		c.telemetry.Record(ctx, "board.chart.metrics_clear", map[string]any{"widget_id": msg.WidgetID})
		return nil
	}
	if err := c.board.SetMetric(msg.WidgetID, msg.Metric, msg.Enabled); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.chart.metric_toggle", map[string]any{
		"widget_id": msg.WidgetID,
		"metric":    string(msg.Metric),
		"enabled":   msg.Enabled,
	})
	return nil
}

// CollapseChartsInput folds or unfolds the chart section.
type CollapseChartsInput struct {
	Collapsed bool `json:"collapsed"`
}

// CollapseChartsCommand persists the chart section fold state.
type CollapseChartsCommand struct {
	board     boardService
	telemetry Telemetry
}

// NewCollapseChartsCommand creates the command.
func NewCollapseChartsCommand(board boardService, telemetry Telemetry) *CollapseChartsCommand {
	return &CollapseChartsCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CollapseChartsInput] = (*CollapseChartsCommand)(nil)

// Execute delegates to the board.
func (c *CollapseChartsCommand) Execute(ctx context.Context, msg CollapseChartsInput) error {
	if c.board == nil {
		return errors.New("collapse charts command requires board")
	}
	c.board.SetCollapsed(msg.Collapsed)
	c.telemetry.Record(ctx, "board.chart.collapse", map[string]any{"collapsed": msg.Collapsed})
	return nil
}
