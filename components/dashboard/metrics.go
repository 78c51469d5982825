package dashboard

import (
	"math"
	"strconv"
)

// Previous-period baselines are synthetic until a second data window is
// wired in: money shrinks to 60%, clicks to 70%, units and conversion to 80%.
const (
	previousMoneyRatio      = 0.6
	previousClicksRatio     = 0.7
	previousUnitsRatio      = 0.8
	previousConversionRatio = 0.8
	previousCommissionRatio = 0.7
)

// FilterMetricRows applies the board filters to the performance rows.
// Creator and product match the row directly; campaign and link match when
// some content row for the same product carries the value. When an interval
// or a content-scoped filter is active the result is additionally restricted
// to products that appear in the interval's content rows.
func FilterMetricRows(d *Dataset, filters FilterSet, interval *DateInterval) []MetricRow {
	var out []MetricRow
	for _, row := range d.Metrics {
		if filters.Creator != "" && row.Creator != filters.Creator {
			continue
		}
		if filters.Product != "" && row.ProductID != filters.Product {
			continue
		}
		if filters.Campaign != "" && !contentMatches(d.Content, row.ProductID, func(c ContentRow) bool {
			return c.Campaign == filters.Campaign
		}) {
			continue
		}
		if filters.Link != "" && !contentMatches(d.Content, row.ProductID, func(c ContentRow) bool {
			return c.Link == filters.Link
		}) {
			continue
		}
		out = append(out, row)
	}

	if interval == nil && filters.Campaign == "" && filters.Link == "" {
		return out
	}
	valid := make(map[string]struct{})
	for _, c := range contentInInterval(d.Content, interval) {
		valid[c.ProductID] = struct{}{}
	}
	restricted := out[:0]
	for _, row := range out {
		if _, ok := valid[row.ProductID]; ok {
			restricted = append(restricted, row)
		}
	}
	return restricted
}

// FilterContentRows applies the board filters to the placement rows. An
// individual drill-down filter replaces the whole FilterSet; the interval
// applies either way.
func FilterContentRows(d *Dataset, filters FilterSet, individual *IndividualFilter, interval *DateInterval) []ContentRow {
	rows := contentInInterval(d.Content, interval)
	var out []ContentRow
	for _, row := range rows {
		if individual != nil {
			switch individual.Type {
			case IndividualByCreator:
				if row.Creator != individual.Value {
					continue
				}
			case IndividualByProduct:
				if row.ProductID != individual.Value {
					continue
				}
			}
			out = append(out, row)
			continue
		}
		if filters.Campaign != "" && row.Campaign != filters.Campaign {
			continue
		}
		if filters.Creator != "" && row.Creator != filters.Creator {
			continue
		}
		if filters.Product != "" && row.ProductID != filters.Product {
			continue
		}
		if filters.Link != "" && row.Link != filters.Link {
			continue
		}
		out = append(out, row)
	}
	return out
}

// ComputeMetrics aggregates the filtered rows and derives the synthetic
// previous-period baseline.
func ComputeMetrics(d *Dataset, filters FilterSet, interval *DateInterval) MetricsComparison {
	rows := FilterMetricRows(d, filters, interval)

	var cur Summary
	var rateSum float64
	for _, row := range rows {
		cur.Spend += row.Spend
		cur.Clicks += row.Clicks
		cur.Units += row.Units
		cur.Sales += row.Sales
		cur.Profit += row.Profit
		cur.PromotionalCosts += row.PromotionalCosts
		cur.TotalExpenses += row.TotalExpenses
		rateSum += row.CommissionRate
	}

	var conversion, rate float64
	prevConversion, prevRate := "0%", "0%"
	if len(rows) > 0 {
		conversion = float64(cur.Units) / math.Max(float64(cur.Clicks), 1) * 100
		rate = rateSum / float64(len(rows))
		cur.Conversion = formatPercent(conversion)
		cur.CommissionRate = formatPercent(rate)
		prevConversion = formatPercent(conversion * previousConversionRatio)
		prevRate = formatPercent(rate * previousCommissionRatio)
	} else {
		cur.Conversion = "0%"
		cur.CommissionRate = "0%"
	}

	prev := Summary{
		Spend:            cur.Spend * previousMoneyRatio,
		Clicks:           int(math.Round(float64(cur.Clicks) * previousClicksRatio)),
		Units:            int(math.Round(float64(cur.Units) * previousUnitsRatio)),
		Sales:            cur.Sales * previousMoneyRatio,
		Conversion:       prevConversion,
		CommissionRate:   prevRate,
		Profit:           cur.Profit * previousMoneyRatio,
		PromotionalCosts: cur.PromotionalCosts * previousMoneyRatio,
		TotalExpenses:    cur.TotalExpenses * previousMoneyRatio,
	}

	return MetricsComparison{Current: cur, Previous: prev}
}

func contentMatches(content []ContentRow, productID string, match func(ContentRow) bool) bool {
	for _, c := range content {
		if c.ProductID == productID && match(c) {
			return true
		}
	}
	return false
}

func contentInInterval(content []ContentRow, interval *DateInterval) []ContentRow {
	if interval == nil {
		return content
	}
	var out []ContentRow
	for _, c := range content {
		if interval.Contains(c.Date) {
			out = append(out, c)
		}
	}
	return out
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
