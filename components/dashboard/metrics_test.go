package dashboard

import (
	"testing"
	"time"
)

func fixtureDataset() *Dataset {
	oct := func(d int) time.Time { return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC) }
	sep := func(d int) time.Time { return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC) }
	return &Dataset{
		Metrics: []MetricRow{
			{
				Key: "1", ProductID: "P1", Creator: "Alice",
				Units: 50, Clicks: 1000, CommissionRate: 6,
				Spend: 100, Sales: 1000, Profit: 300, PromotionalCosts: 40, TotalExpenses: 140,
			},
			{
				Key: "2", ProductID: "P2", Creator: "Bob",
				Units: 30, Clicks: 500, CommissionRate: 8,
				Spend: 60, Sales: 500, Profit: 100, PromotionalCosts: 20, TotalExpenses: 80,
			},
		},
		Content: []ContentRow{
			{Key: "c1", ProductID: "P1", Creator: "Alice", Date: oct(1), Campaign: "X", Link: "https://example.com/a"},
			{Key: "c2", ProductID: "P2", Creator: "Bob", Date: sep(1), Campaign: "Y", Link: "https://example.com/b"},
		},
	}
}

func TestComputeMetricsAggregates(t *testing.T) {
	d := fixtureDataset()
	got := ComputeMetrics(d, FilterSet{}, nil)

	if got.Current.Spend != 160 {
		t.Fatalf("expected spend 160, got %v", got.Current.Spend)
	}
	if got.Current.Units != 80 || got.Current.Clicks != 1500 {
		t.Fatalf("unexpected units/clicks: %d/%d", got.Current.Units, got.Current.Clicks)
	}
	if got.Current.Conversion != "5.3%" {
		t.Fatalf("expected conversion 5.3%%, got %s", got.Current.Conversion)
	}
	if got.Current.CommissionRate != "7.0%" {
		t.Fatalf("expected commission 7.0%%, got %s", got.Current.CommissionRate)
	}
}

func TestComputeMetricsPreviousPeriodRatios(t *testing.T) {
	d := fixtureDataset()
	got := ComputeMetrics(d, FilterSet{}, nil)

	if got.Previous.Spend != 96 {
		t.Fatalf("expected previous spend 96, got %v", got.Previous.Spend)
	}
	if got.Previous.Clicks != 1050 {
		t.Fatalf("expected previous clicks 1050, got %d", got.Previous.Clicks)
	}
	if got.Previous.Units != 64 {
		t.Fatalf("expected previous units 64, got %d", got.Previous.Units)
	}
	if got.Previous.Conversion != "4.3%" {
		t.Fatalf("expected previous conversion 4.3%%, got %s", got.Previous.Conversion)
	}
	if got.Previous.CommissionRate != "4.9%" {
		t.Fatalf("expected previous commission 4.9%%, got %s", got.Previous.CommissionRate)
	}
}

func TestComputeMetricsEmptySelection(t *testing.T) {
	d := fixtureDataset()
	got := ComputeMetrics(d, FilterSet{Creator: "Nobody"}, nil)

	if got.Current.Conversion != "0%" {
		t.Fatalf("expected conversion 0%%, got %s", got.Current.Conversion)
	}
	if got.Current.CommissionRate != "0%" {
		t.Fatalf("expected commission 0%%, got %s", got.Current.CommissionRate)
	}
	if got.Current.Spend != 0 {
		t.Fatalf("expected zero spend, got %v", got.Current.Spend)
	}
	// The synthetic baseline mirrors the current formatting on an empty set
	// instead of rendering "0.0%".
	if got.Previous.Conversion != "0%" {
		t.Fatalf("expected previous conversion 0%%, got %s", got.Previous.Conversion)
	}
	if got.Previous.CommissionRate != "0%" {
		t.Fatalf("expected previous commission 0%%, got %s", got.Previous.CommissionRate)
	}
}

func TestFilterMetricRowsCampaignJoinsThroughContent(t *testing.T) {
	d := fixtureDataset()
	rows := FilterMetricRows(d, FilterSet{Campaign: "X"}, nil)

	if len(rows) != 1 || rows[0].ProductID != "P1" {
		t.Fatalf("expected only P1, got %+v", rows)
	}
}

func TestFilterMetricRowsLinkJoinsThroughContent(t *testing.T) {
	d := fixtureDataset()
	rows := FilterMetricRows(d, FilterSet{Link: "https://example.com/b"}, nil)

	if len(rows) != 1 || rows[0].ProductID != "P2" {
		t.Fatalf("expected only P2, got %+v", rows)
	}
}

func TestFilterMetricRowsCreatorDirect(t *testing.T) {
	d := fixtureDataset()
	rows := FilterMetricRows(d, FilterSet{Creator: "Alice"}, nil)

	if len(rows) != 1 || rows[0].Creator != "Alice" {
		t.Fatalf("expected Alice's row, got %+v", rows)
	}
}

func TestFilterMetricRowsIntervalRestrictsByContent(t *testing.T) {
	d := fixtureDataset()
	october := NewDateInterval(
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC),
	)
	rows := FilterMetricRows(d, FilterSet{}, &october)

	// Only P1 has a placement inside October.
	if len(rows) != 1 || rows[0].ProductID != "P1" {
		t.Fatalf("expected only P1, got %+v", rows)
	}
}

func TestFilterContentRowsIndividualReplacesFilters(t *testing.T) {
	d := fixtureDataset()
	individual := &IndividualFilter{Type: IndividualByCreator, Value: "Bob"}

	// The campaign filter would exclude Bob's row; the drill-down wins.
	rows := FilterContentRows(d, FilterSet{Campaign: "X"}, individual, nil)
	if len(rows) != 1 || rows[0].Creator != "Bob" {
		t.Fatalf("expected Bob's placement, got %+v", rows)
	}
}

func TestFilterContentRowsIntervalAppliesWithDrillDown(t *testing.T) {
	d := fixtureDataset()
	individual := &IndividualFilter{Type: IndividualByProduct, Value: "P2"}
	october := NewDateInterval(
		time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC),
	)

	rows := FilterContentRows(d, FilterSet{}, individual, &october)
	if len(rows) != 0 {
		t.Fatalf("expected no placements, got %+v", rows)
	}
}

func TestDatasetOptionsKeepFirstAppearanceOrder(t *testing.T) {
	d := NewDemoDataset(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC))

	campaigns := d.CampaignOptions()
	if len(campaigns) != 3 || campaigns[0] != "Amazon" {
		t.Fatalf("unexpected campaigns: %v", campaigns)
	}
	creators := d.CreatorOptions()
	if len(creators) != 2 {
		t.Fatalf("expected 2 creators, got %v", creators)
	}
	if len(d.ProductOptions()) != 8 {
		t.Fatalf("expected 8 products, got %v", d.ProductOptions())
	}
	if len(d.LinkOptions()) != 12 {
		t.Fatalf("expected 12 links, got %v", d.LinkOptions())
	}
}
