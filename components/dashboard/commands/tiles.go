package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// tileService is the slice of the tile strip the tile commands need.
type tileService interface {
	Toggle(key dashboard.MetricKey, show bool)
	Reorder(from, to int)
}

// ToggleTileInput shows or hides one summary tile.
type ToggleTileInput struct {
	Metric dashboard.MetricKey `json:"metric"`
	Show   bool                `json:"show"`
}

// ToggleTileCommand updates tile visibility.
type ToggleTileCommand struct {
	tiles     tileService
	telemetry Telemetry
}

// NewToggleTileCommand creates the command.
func NewToggleTileCommand(tiles tileService, telemetry Telemetry) *ToggleTileCommand {
	return &ToggleTileCommand{tiles: tiles, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleTileInput] = (*ToggleTileCommand)(nil)

// Execute delegates to the tile strip.
func (c *ToggleTileCommand) Execute(ctx context.Context, msg ToggleTileInput) error {
	if c.tiles == nil {
		return errors.New("toggle tile command requires tiles")
	}
	c.tiles.Toggle(msg.Metric, msg.Show)
	c.telemetry.Record(ctx, "board.tile.toggle", map[string]any{
		"metric": string(msg.Metric),
		"show":   msg.Show,
	})
	return nil
}

// ReorderTilesInput moves a visible tile between positions.
type ReorderTilesInput struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderTilesCommand reorders the visible tiles.
type ReorderTilesCommand struct {
	tiles     tileService
	telemetry Telemetry
}

// NewReorderTilesCommand creates the command.
func NewReorderTilesCommand(tiles tileService, telemetry Telemetry) *ReorderTilesCommand {
	return &ReorderTilesCommand{tiles: tiles, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderTilesInput] = (*ReorderTilesCommand)(nil)

// Execute delegates to the tile strip.
func (c *ReorderTilesCommand) Execute(ctx context.Context, msg ReorderTilesInput) error {
	if c.tiles == nil {
		return errors.New("reorder tiles command requires tiles")
	}
	c.tiles.Reorder(msg.From, msg.To)
	c.telemetry.Record(ctx, "board.tile.reorder", map[string]any{
		"from": msg.From,
		"to":   msg.To,
	})
	return nil
}
