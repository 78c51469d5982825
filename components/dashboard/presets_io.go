package dashboard

import (
	"encoding/json"
	"fmt"
)

// PresetDocument is the portable form of every saved preset on a board,
// used by tooling to move presets between stores.
type PresetDocument struct {
	Version string                           `json:"version"`
	Charts  []ChartPreset                    `json:"charts,omitempty"`
	Tiles   []TilePreset                     `json:"tiles,omitempty"`
	Grids   map[string]map[string]GridPreset `json:"grids,omitempty"`
}

// ExportPresets collects every preset saved on the shell.
func ExportPresets(s *Shell) PresetDocument {
	doc := PresetDocument{
		Version: ManifestVersion,
		Charts:  s.Board().Presets(),
		Tiles:   s.Tiles().Presets(),
		Grids:   map[string]map[string]GridPreset{},
	}
	for _, grid := range []*GridAdapter{s.DetailsGrid(), s.ContentGrid()} {
		if presets := grid.Presets(); len(presets) > 0 {
			doc.Grids[grid.TableID()] = presets
		}
	}
	return doc
}

// ImportPresets validates raw JSON against the preset schema and merges the
// presets into the shell's stores. Chart and tile presets append; grid
// presets overwrite same-name entries, matching their save semantics.
func ImportPresets(s *Shell, raw []byte, validator DocumentValidator) (PresetDocument, error) {
	if validator == nil {
		validator = noopDocumentValidator{}
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return PresetDocument{}, fmt.Errorf("dashboard: parse preset document: %w", err)
	}
	if err := validator.Validate(generic); err != nil {
		return PresetDocument{}, err
	}
	var doc PresetDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return PresetDocument{}, fmt.Errorf("dashboard: decode preset document: %w", err)
	}
	if doc.Version != ManifestVersion {
		return PresetDocument{}, fmt.Errorf("dashboard: unsupported preset document version %q", doc.Version)
	}

	board := s.Board()
	for _, p := range doc.Charts {
		board.presets = append(board.presets, p)
	}
	board.persistPresets()

	tiles := s.Tiles()
	for _, p := range doc.Tiles {
		tiles.presets = append(tiles.presets, p)
	}
	saveJSON(tiles.store, KeyTilesPresets, tiles.presets, tiles.log)

	for _, grid := range []*GridAdapter{s.DetailsGrid(), s.ContentGrid()} {
		imported, ok := doc.Grids[grid.TableID()]
		if !ok {
			continue
		}
		for name, p := range imported {
			p.Name = name
			grid.presets[name] = p
		}
		grid.persistPresets()
	}
	return doc, nil
}
