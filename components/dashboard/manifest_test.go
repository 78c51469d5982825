package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const manifestFixture = `
version: "1"
name: affiliate metrics
metrics:
  - definition:
      key: refunds
      label: Refunds
      unit: money
      base: 120
      volatility: 0.2
    tags: [finance]
  - definition:
      key: spend
      label: Ad Spend
      unit: money
      base: 1500
      volatility: 0.3
      chartable: true
`

func TestDecodeManifest(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(manifestFixture))
	if err != nil {
		t.Fatalf("DecodeManifest: %v", err)
	}
	if doc.Name != "affiliate metrics" || len(doc.Metrics) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Metrics[0].Definition.Key != "refunds" || doc.Metrics[0].Tags[0] != "finance" {
		t.Fatalf("unexpected first metric %+v", doc.Metrics[0])
	}
}

func TestDecodeManifestDefaultsVersion(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader("metrics: []\n"))
	if err != nil {
		t.Fatalf("DecodeManifest: %v", err)
	}
	if doc.Version != ManifestVersion {
		t.Fatalf("expected version %s, got %s", ManifestVersion, doc.Version)
	}
}

func TestDecodeManifestRejections(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"unknown field": "version: \"1\"\nbogus: true\nmetrics: []\n",
		"bad version":   "version: \"2\"\nmetrics: []\n",
		"missing key":   "metrics:\n  - definition:\n      label: X\n      unit: money\n",
		"missing label": "metrics:\n  - definition:\n      key: x\n      unit: money\n",
		"bad unit":      "metrics:\n  - definition:\n      key: x\n      label: X\n      unit: rubles\n",
		"duplicate key": "metrics:\n  - definition:\n      key: x\n      label: X\n      unit: money\n  - definition:\n      key: x\n      label: Y\n      unit: money\n",
	}
	for name, input := range cases {
		if _, err := DecodeManifest(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRegistryLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.yaml")
	if err := os.WriteFile(path, []byte(manifestFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	reg := NewRegistry()
	doc, err := reg.LoadManifestFile(path)
	if err != nil {
		t.Fatalf("LoadManifestFile: %v", err)
	}
	if doc.Source != path {
		t.Fatalf("expected source %s, got %s", path, doc.Source)
	}

	// New metric appended, existing metric overridden in place.
	def, ok := reg.Definition("refunds")
	if !ok || def.Label != "Refunds" {
		t.Fatalf("expected refunds registered, got %+v ok=%v", def, ok)
	}
	spend, _ := reg.Definition(MetricSpend)
	if spend.Label != "Ad Spend" || spend.Base != 1500 {
		t.Fatalf("expected spend overridden, got %+v", spend)
	}
	keys := reg.Keys()
	if keys[0] != MetricSpend {
		t.Fatalf("re-registering must keep the original position, got %v", keys)
	}
	if keys[len(keys)-1] != "refunds" {
		t.Fatalf("new metric should append, got %v", keys)
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRegistryDefaults(t *testing.T) {
	reg := NewRegistry()
	if len(reg.Definitions()) != len(DefaultMetricDefinitions()) {
		t.Fatalf("expected default catalog, got %d definitions", len(reg.Definitions()))
	}
	chartable := reg.ChartableKeys()
	if len(chartable) != len(ChartMetrics) {
		t.Fatalf("expected %d chartable keys, got %v", len(ChartMetrics), chartable)
	}
	if err := reg.RegisterDefinition(MetricDefinition{Key: "", Label: "X"}); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if err := reg.RegisterDefinition(MetricDefinition{Key: "x"}); err == nil {
		t.Fatalf("expected error for missing label")
	}
}

func TestRegistryHooks(t *testing.T) {
	called := false
	RegisterMetricHook(func(reg *Registry) error {
		called = true
		return reg.RegisterDefinition(MetricDefinition{Key: "hooked", Label: "Hooked", Unit: UnitCount})
	})

	reg := NewRegistry()
	if !called {
		t.Fatalf("expected hook applied on construction")
	}
	if _, ok := reg.Definition("hooked"); !ok {
		t.Fatalf("expected hooked metric registered")
	}
}
