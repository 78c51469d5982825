package dashboard

import (
	"time"
)

// Granularity is the bucketing applied to the chart x-axis.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// GranularityAvailability reports which granularities a viewer may pick for
// the active interval. Preset ranges lock all three off; the resolver then
// keeps full control of the bucketing.
type GranularityAvailability struct {
	Day   bool
	Week  bool
	Month bool
}

// Enabled reports whether g may be selected.
func (a GranularityAvailability) Enabled(g Granularity) bool {
	switch g {
	case GranularityDay:
		return a.Day
	case GranularityWeek:
		return a.Week
	case GranularityMonth:
		return a.Month
	}
	return false
}

// Fallback returns the finest enabled granularity, day preferred over week
// over month. ok is false when nothing is enabled.
func (a GranularityAvailability) Fallback() (Granularity, bool) {
	switch {
	case a.Day:
		return GranularityDay, true
	case a.Week:
		return GranularityWeek, true
	case a.Month:
		return GranularityMonth, true
	}
	return "", false
}

// RangePreset identifies a well-known date interval.
type RangePreset string

const (
	PresetToday         RangePreset = "today"
	PresetYesterday     RangePreset = "yesterday"
	PresetThisWeek      RangePreset = "this_week"
	PresetLastWeek      RangePreset = "last_week"
	PresetThisMonth     RangePreset = "this_month"
	PresetLastMonth     RangePreset = "last_month"
	PresetSeptember2025 RangePreset = "september_2025"
	PresetLast3Months   RangePreset = "last_3_months"
)

// DateInterval is an inclusive day-resolution range. Callers are expected to
// pass Start <= End; helpers truncate both ends to local midnight before
// comparing.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// NewDateInterval builds an interval truncated to day resolution.
func NewDateInterval(start, end time.Time) DateInterval {
	return DateInterval{Start: dayOf(start), End: dayOf(end)}
}

// SpanDays returns the inclusive number of calendar days covered. Both ends
// are re-anchored in UTC so DST transitions cannot shorten a day.
func (i DateInterval) SpanDays() int {
	sy, sm, sd := i.Start.Date()
	ey, em, ed := i.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// Contains reports whether t falls on a day inside the interval.
func (i DateInterval) Contains(t time.Time) bool {
	d := dayOf(t)
	return !d.Before(dayOf(i.Start)) && !d.After(dayOf(i.End))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MetricKey identifies one of the board metrics.
type MetricKey string

const (
	MetricSpend            MetricKey = "spend"
	MetricClicks           MetricKey = "clicks"
	MetricUnits            MetricKey = "units"
	MetricSales            MetricKey = "sales"
	MetricConversion       MetricKey = "conversion"
	MetricCommissionRate   MetricKey = "commission_rate"
	MetricProfit           MetricKey = "profit"
	MetricPromotionalCosts MetricKey = "promotional_costs"
	MetricTotalExpenses    MetricKey = "total_expenses"
)

// MetricUnit drives series rounding and axis assignment.
type MetricUnit string

const (
	UnitMoney   MetricUnit = "money"
	UnitCount   MetricUnit = "count"
	UnitPercent MetricUnit = "percent"
)

// FilterSet holds the board-level selector state. Empty string means the
// dimension is unfiltered.
type FilterSet struct {
	Campaign string
	Creator  string
	Product  string
	Link     string
}

// Active reports whether any dimension is set.
func (f FilterSet) Active() bool {
	return f.Campaign != "" || f.Creator != "" || f.Product != "" || f.Link != ""
}

// IndividualFilterType scopes a cross-table drill-down filter.
type IndividualFilterType string

const (
	IndividualByCreator IndividualFilterType = "creator"
	IndividualByProduct IndividualFilterType = "product"
)

// IndividualFilter narrows the content table to a single creator or product.
// It replaces the FilterSet for that table while active.
type IndividualFilter struct {
	Type  IndividualFilterType `json:"type"`
	Value string               `json:"value"`
}

// MetricRow is one product/creator performance record.
type MetricRow struct {
	Key              string  `json:"key"`
	Image            string  `json:"image"`
	ProductID        string  `json:"productId"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Creator          string  `json:"creator"`
	Units            int     `json:"units"`
	Clicks           int     `json:"clicks"`
	Conversion       float64 `json:"conversion"`
	CommissionRate   float64 `json:"commissionRate"`
	Margin           float64 `json:"margin"`
	Spend            float64 `json:"spend"`
	Sales            float64 `json:"sales"`
	Profit           float64 `json:"profit"`
	PromotionalCosts float64 `json:"promotionalCosts"`
	TotalExpenses    float64 `json:"totalExpenses"`
}

// ContentRow is a single placement: a creator published a link for a product
// under a campaign on a given date.
type ContentRow struct {
	Key       string    `json:"key"`
	ProductID string    `json:"productId"`
	Creator   string    `json:"creator"`
	Date      time.Time `json:"date"`
	Campaign  string    `json:"campaign"`
	Link      string    `json:"link"`
}

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "Active"
	CampaignPending   CampaignStatus = "Pending"
	CampaignCompleted CampaignStatus = "Completed"
)

// Campaign describes a promo flight.
type Campaign struct {
	Name   string         `json:"name"`
	Status CampaignStatus `json:"status"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
}

// Summary is the aggregate over a filtered MetricRow set. Percentage fields
// are pre-formatted with a single decimal and a trailing percent sign.
type Summary struct {
	Spend            float64 `json:"spend"`
	Clicks           int     `json:"clicks"`
	Units            int     `json:"units"`
	Sales            float64 `json:"sales"`
	Conversion       string  `json:"conversion"`
	CommissionRate   string  `json:"commissionRate"`
	Profit           float64 `json:"profit"`
	PromotionalCosts float64 `json:"promotionalCosts"`
	TotalExpenses    float64 `json:"totalExpenses"`
}

// MetricsComparison pairs the current aggregate with the previous-period
// baseline used for delta badges.
type MetricsComparison struct {
	Current  Summary `json:"current"`
	Previous Summary `json:"previous"`
}
