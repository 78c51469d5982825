package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// BoardManifestDocument models a YAML manifest declaring or overriding
// metric definitions for the board.
type BoardManifestDocument struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Metrics []ManifestMetric `json:"metrics" yaml:"metrics"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestMetric describes a single metric entry within a manifest.
type ManifestMetric struct {
	Definition MetricDefinition `json:"definition" yaml:"definition"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*BoardManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers metric definitions from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *BoardManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, metric := range doc.Metrics {
		if err := r.RegisterDefinition(metric.Definition); err != nil {
			return fmt.Errorf("dashboard: register metric %s from %s: %w", metric.Definition.Key, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*BoardManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*BoardManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc BoardManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *BoardManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[MetricKey]struct{}, len(doc.Metrics))
	for idx, metric := range doc.Metrics {
		def := metric.Definition
		if def.Key == "" {
			return fmt.Errorf("dashboard: manifest metric at index %d is missing definition.key", idx)
		}
		if def.Label == "" {
			return fmt.Errorf("dashboard: manifest metric %s missing definition.label", def.Key)
		}
		switch def.Unit {
		case UnitMoney, UnitCount, UnitPercent:
		default:
			return fmt.Errorf("dashboard: manifest metric %s has unknown unit %q", def.Key, def.Unit)
		}
		if _, exists := seen[def.Key]; exists {
			return fmt.Errorf("dashboard: manifest duplicates metric key %s", def.Key)
		}
		seen[def.Key] = struct{}{}
	}
	return nil
}

func (doc *BoardManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
