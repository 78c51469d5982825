package commands

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// FilterDimension names a board selector.
type FilterDimension string

const (
	FilterCampaign FilterDimension = "campaign"
	FilterCreator  FilterDimension = "creator"
	FilterProduct  FilterDimension = "product"
	FilterLink     FilterDimension = "link"
)

// filterService is the slice of the shell the filter commands need.
type filterService interface {
	SetCampaignFilter(v string)
	SetCreatorFilter(v string)
	SetProductFilter(v string)
	SetLinkFilter(v string)
	ClearFilters()
	SetInterval(interval *dashboard.DateInterval)
	SetPreset(preset dashboard.RangePreset) error
	SetGranularity(g dashboard.Granularity) error
	DrillDown(f dashboard.IndividualFilter)
	ClearDrillDown()
}

// SetFilterInput sets one selector; an empty value clears it.
type SetFilterInput struct {
	Dimension FilterDimension `json:"dimension"`
	Value     string          `json:"value"`
}

// SetFilterCommand updates a board selector.
type SetFilterCommand struct {
	shell     filterService
	telemetry Telemetry
}

// NewSetFilterCommand creates the command.
func NewSetFilterCommand(shell filterService, telemetry Telemetry) *SetFilterCommand {
	return &SetFilterCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetFilterInput] = (*SetFilterCommand)(nil)

// Execute dispatches on the dimension.
func (c *SetFilterCommand) Execute(ctx context.Context, msg SetFilterInput) error {
	if c.shell == nil {
		return errors.New("set filter command requires shell")
	}
	switch msg.Dimension {
	case FilterCampaign:
		c.shell.SetCampaignFilter(msg.Value)
	case FilterCreator:
		c.shell.SetCreatorFilter(msg.Value)
	case FilterProduct:
		c.shell.SetProductFilter(msg.Value)
	case FilterLink:
		c.shell.SetLinkFilter(msg.Value)
	default:
		return errors.New("set filter command requires a known dimension")
	}
	c.telemetry.Record(ctx, "board.filter.set", map[string]any{
		"dimension": string(msg.Dimension),
		"cleared":   msg.Value == "",
	})
	return nil
}

// SetIntervalInput replaces the active interval. Preset wins over the
// explicit bounds; all empty clears the interval.
type SetIntervalInput struct {
	Preset dashboard.RangePreset `json:"preset,omitempty"`
	Start  time.Time             `json:"start,omitempty"`
	End    time.Time             `json:"end,omitempty"`
}

// SetIntervalCommand updates the active date interval.
type SetIntervalCommand struct {
	shell     filterService
	telemetry Telemetry
}

// NewSetIntervalCommand creates the command.
func NewSetIntervalCommand(shell filterService, telemetry Telemetry) *SetIntervalCommand {
	return &SetIntervalCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetIntervalInput] = (*SetIntervalCommand)(nil)

// Execute resolves the preset or bounds and delegates to the shell.
func (c *SetIntervalCommand) Execute(ctx context.Context, msg SetIntervalInput) error {
	if c.shell == nil {
		return errors.New("set interval command requires shell")
	}
	switch {
	case msg.Preset != "":
		if err := c.shell.SetPreset(msg.Preset); err != nil {
			return err
		}
	case msg.Start.IsZero() && msg.End.IsZero():
		c.shell.SetInterval(nil)
	case msg.End.Before(msg.Start):
		return errors.New("set interval command requires start <= end")
	default:
		iv := dashboard.NewDateInterval(msg.Start, msg.End)
		c.shell.SetInterval(&iv)
	}
	c.telemetry.Record(ctx, "board.interval.set", map[string]any{
		"preset": string(msg.Preset),
	})
	return nil
}

// SetGranularityInput picks an explicit x-axis bucketing.
type SetGranularityInput struct {
	Granularity dashboard.Granularity `json:"granularity"`
}

// SetGranularityCommand stores the viewer's granularity pick.
type SetGranularityCommand struct {
	shell     filterService
	telemetry Telemetry
}

// NewSetGranularityCommand creates the command.
func NewSetGranularityCommand(shell filterService, telemetry Telemetry) *SetGranularityCommand {
	return &SetGranularityCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetGranularityInput] = (*SetGranularityCommand)(nil)

// Execute delegates to the shell.
func (c *SetGranularityCommand) Execute(ctx context.Context, msg SetGranularityInput) error {
	if c.shell == nil {
		return errors.New("set granularity command requires shell")
	}
	if err := c.shell.SetGranularity(msg.Granularity); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.granularity.set", map[string]any{
		"granularity": string(msg.Granularity),
	})
	return nil
}

// DrillDownInput narrows the content grid to one creator or product. Clear
// drops an active drill-down instead.
type DrillDownInput struct {
	Type  dashboard.IndividualFilterType `json:"type,omitempty"`
	Value string                         `json:"value,omitempty"`
	Clear bool                           `json:"clear,omitempty"`
}

// DrillDownCommand applies or clears the cross-table drill-down filter.
type DrillDownCommand struct {
	shell     filterService
	telemetry Telemetry
}

// NewDrillDownCommand creates the command.
func NewDrillDownCommand(shell filterService, telemetry Telemetry) *DrillDownCommand {
	return &DrillDownCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DrillDownInput] = (*DrillDownCommand)(nil)

// Execute delegates to the shell.
func (c *DrillDownCommand) Execute(ctx context.Context, msg DrillDownInput) error {
	if c.shell == nil {
		return errors.New("drill down command requires shell")
	}
	if msg.Clear {
		c.shell.ClearDrillDown()
		c.telemetry.Record(ctx, "board.drilldown.clear", nil)
		return nil
	}
	if msg.Type != dashboard.IndividualByCreator && msg.Type != dashboard.IndividualByProduct {
		return errors.New("drill down command requires type creator or product")
	}
	if msg.Value == "" {
		return errors.New("drill down command requires a value")
	}
	c.shell.DrillDown(dashboard.IndividualFilter{Type: msg.Type, Value: msg.Value})
	c.telemetry.Record(ctx, "board.drilldown.set", map[string]any{
		"type": string(msg.Type),
	})
	return nil
}
