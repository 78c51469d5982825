package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// PresetScope names the board area a preset operation targets.
type PresetScope string

const (
	ScopeCharts PresetScope = "charts"
	ScopeTiles  PresetScope = "tiles"
	ScopeGrid   PresetScope = "grid"
)

// presetShell exposes the preset-bearing parts of the shell.
type presetShell interface {
	Board() *dashboard.ChartBoard
	Tiles() *dashboard.TileBar
	DetailsGrid() *dashboard.GridAdapter
	ContentGrid() *dashboard.GridAdapter
}

func gridFor(shell presetShell, tableID string) (*dashboard.GridAdapter, error) {
	switch tableID {
	case dashboard.DetailsTableID:
		return shell.DetailsGrid(), nil
	case dashboard.ContentTableID:
		return shell.ContentGrid(), nil
	}
	return nil, errors.New("preset command requires a known table id")
}

// PresetInput targets one preset by scope and name. TableID is required only
// for grid scope.
type PresetInput struct {
	Scope   PresetScope `json:"scope"`
	TableID string      `json:"table_id,omitempty"`
	Name    string      `json:"name"`
}

// SavePresetCommand snapshots the current scope state under a name.
type SavePresetCommand struct {
	shell     presetShell
	telemetry Telemetry
}

// NewSavePresetCommand creates the command.
func NewSavePresetCommand(shell presetShell, telemetry Telemetry) *SavePresetCommand {
	return &SavePresetCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PresetInput] = (*SavePresetCommand)(nil)

// Execute dispatches on scope.
func (c *SavePresetCommand) Execute(ctx context.Context, msg PresetInput) error {
	if c.shell == nil {
		return errors.New("save preset command requires shell")
	}
	var err error
	switch msg.Scope {
	case ScopeCharts:
		_, err = c.shell.Board().SavePreset(msg.Name)
	case ScopeTiles:
		_, err = c.shell.Tiles().SavePreset(msg.Name)
	case ScopeGrid:
		var grid *dashboard.GridAdapter
		grid, err = gridFor(c.shell, msg.TableID)
		if err == nil {
			_, err = grid.SavePreset(msg.Name)
		}
	default:
		return errors.New("save preset command requires a known scope")
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.preset.save", map[string]any{
		"scope": string(msg.Scope),
		"name":  msg.Name,
	})
	return nil
}

// ApplyPresetCommand restores a saved preset.
type ApplyPresetCommand struct {
	shell     presetShell
	telemetry Telemetry
}

// NewApplyPresetCommand creates the command.
func NewApplyPresetCommand(shell presetShell, telemetry Telemetry) *ApplyPresetCommand {
	return &ApplyPresetCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PresetInput] = (*ApplyPresetCommand)(nil)

// Execute dispatches on scope.
func (c *ApplyPresetCommand) Execute(ctx context.Context, msg PresetInput) error {
	if c.shell == nil {
		return errors.New("apply preset command requires shell")
	}
	var err error
	switch msg.Scope {
	case ScopeCharts:
		err = c.shell.Board().ApplyPreset(msg.Name)
	case ScopeTiles:
		err = c.shell.Tiles().ApplyPreset(msg.Name)
	case ScopeGrid:
		var grid *dashboard.GridAdapter
		grid, err = gridFor(c.shell, msg.TableID)
		if err == nil {
			err = grid.ApplyPreset(msg.Name)
		}
	default:
		return errors.New("apply preset command requires a known scope")
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.preset.apply", map[string]any{
		"scope": string(msg.Scope),
		"name":  msg.Name,
	})
	return nil
}

// DeletePresetCommand removes a saved preset.
type DeletePresetCommand struct {
	shell     presetShell
	telemetry Telemetry
}

// NewDeletePresetCommand creates the command.
func NewDeletePresetCommand(shell presetShell, telemetry Telemetry) *DeletePresetCommand {
	return &DeletePresetCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PresetInput] = (*DeletePresetCommand)(nil)

// Execute dispatches on scope.
func (c *DeletePresetCommand) Execute(ctx context.Context, msg PresetInput) error {
	if c.shell == nil {
		return errors.New("delete preset command requires shell")
	}
	var err error
	switch msg.Scope {
	case ScopeCharts:
		err = c.shell.Board().DeletePreset(msg.Name)
	case ScopeTiles:
		err = c.shell.Tiles().DeletePreset(msg.Name)
	case ScopeGrid:
		var grid *dashboard.GridAdapter
		grid, err = gridFor(c.shell, msg.TableID)
		if err == nil {
			err = grid.DeletePreset(msg.Name)
		}
	default:
		return errors.New("delete preset command requires a known scope")
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.preset.delete", map[string]any{
		"scope": string(msg.Scope),
		"name":  msg.Name,
	})
	return nil
}

// ResetLayoutInput restores a scope to its defaults, presets untouched.
type ResetLayoutInput struct {
	Scope   PresetScope `json:"scope"`
	TableID string      `json:"table_id,omitempty"`
}

// ResetLayoutCommand restores the default layout for a scope.
type ResetLayoutCommand struct {
	shell     presetShell
	telemetry Telemetry
}

// NewResetLayoutCommand creates the command.
func NewResetLayoutCommand(shell presetShell, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute dispatches on scope.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.shell == nil {
		return errors.New("reset layout command requires shell")
	}
	switch msg.Scope {
	case ScopeCharts:
		c.shell.Board().ResetToDefault()
	case ScopeTiles:
		c.shell.Tiles().ResetToDefault()
	case ScopeGrid:
		grid, err := gridFor(c.shell, msg.TableID)
		if err != nil {
			return err
		}
		grid.ResetToDefault()
	default:
		return errors.New("reset layout command requires a known scope")
	}
	c.telemetry.Record(ctx, "board.layout.reset", map[string]any{"scope": string(msg.Scope)})
	return nil
}
