package dashboard

import (
	"fmt"
	"time"
)

// Span thresholds used when downgrading or defaulting the granularity.
const (
	maxDaySpan  = 31
	maxWeekSpan = 93
	weekSpan    = 7
)

// fixedHistoricalMonth is the one preset pinned to an absolute month rather
// than derived from the current date.
var fixedHistoricalMonth = struct {
	start time.Time
	end   time.Time
}{
	start: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
	end:   time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
}

// MatchRangePreset reports whether interval is exactly one of the well-known
// ranges relative to now. Comparison is at day resolution.
func MatchRangePreset(interval *DateInterval, now time.Time) (RangePreset, bool) {
	if interval == nil {
		return "", false
	}
	start := dayOf(interval.Start)
	end := dayOf(interval.End)
	today := dayOf(now)

	sameDay := func(a, b time.Time) bool {
		ay, am, ad := a.Date()
		by, bm, bd := b.Date()
		return ay == by && am == bm && ad == bd
	}

	switch {
	case sameDay(start, today) && sameDay(end, today):
		return PresetToday, true
	case sameDay(start, today.AddDate(0, 0, -1)) && sameDay(end, today.AddDate(0, 0, -1)):
		return PresetYesterday, true
	case sameDay(start, startOfWeek(today)) && sameDay(end, endOfWeek(today)):
		return PresetThisWeek, true
	case sameDay(start, startOfWeek(today).AddDate(0, 0, -7)) && sameDay(end, startOfWeek(today).AddDate(0, 0, -1)):
		return PresetLastWeek, true
	case sameDay(start, startOfMonth(today)) && sameDay(end, endOfMonth(today)):
		return PresetThisMonth, true
	case sameDay(start, startOfMonth(today).AddDate(0, -1, 0)) && sameDay(end, startOfMonth(today).AddDate(0, 0, -1)):
		return PresetLastMonth, true
	case sameDay(start, fixedHistoricalMonth.start) && sameDay(end, fixedHistoricalMonth.end):
		return PresetSeptember2025, true
	case sameDay(start, startOfMonth(today).AddDate(0, -3, 0)) && sameDay(end, endOfMonth(today)):
		return PresetLast3Months, true
	}
	return "", false
}

// PresetInterval materializes a preset into a concrete interval relative to
// now. The current week and month presets span the full calendar unit, so
// their intervals may extend past now.
func PresetInterval(preset RangePreset, now time.Time) (DateInterval, error) {
	today := dayOf(now)
	switch preset {
	case PresetToday:
		return DateInterval{Start: today, End: today}, nil
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return DateInterval{Start: y, End: y}, nil
	case PresetThisWeek:
		return DateInterval{Start: startOfWeek(today), End: endOfWeek(today)}, nil
	case PresetLastWeek:
		start := startOfWeek(today).AddDate(0, 0, -7)
		return DateInterval{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PresetThisMonth:
		return DateInterval{Start: startOfMonth(today), End: endOfMonth(today)}, nil
	case PresetLastMonth:
		start := startOfMonth(today).AddDate(0, -1, 0)
		return DateInterval{Start: start, End: startOfMonth(today).AddDate(0, 0, -1)}, nil
	case PresetSeptember2025:
		return DateInterval{Start: fixedHistoricalMonth.start, End: fixedHistoricalMonth.end}, nil
	case PresetLast3Months:
		return DateInterval{Start: startOfMonth(today).AddDate(0, -3, 0), End: endOfMonth(today)}, nil
	}
	return DateInterval{}, fmt.Errorf("dashboard: unknown range preset %q", preset)
}

// ResolveGranularity picks the effective bucketing for the interval. Preset
// ranges ignore the viewer choice entirely. A custom interval honors the
// choice but downgrades it when the span is too short for the bucket size;
// with no choice the span alone decides.
func ResolveGranularity(interval *DateInterval, choice Granularity, now time.Time) Granularity {
	if interval == nil {
		return GranularityDay
	}
	if preset, ok := MatchRangePreset(interval, now); ok {
		if preset == PresetLast3Months {
			return GranularityWeek
		}
		return GranularityDay
	}

	span := interval.SpanDays()
	switch choice {
	case GranularityDay:
		return GranularityDay
	case GranularityWeek:
		if span <= weekSpan {
			return GranularityDay
		}
		return GranularityWeek
	case GranularityMonth:
		if span <= maxDaySpan {
			if span <= weekSpan {
				return GranularityDay
			}
			return GranularityWeek
		}
		return GranularityMonth
	}

	switch {
	case span <= maxDaySpan:
		return GranularityDay
	case span <= maxWeekSpan:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}

// ResolveAvailability reports which granularities the viewer may select.
// Presets lock the radio group off; custom intervals enable buckets only
// when the span holds more than one of them.
func ResolveAvailability(interval *DateInterval, now time.Time) GranularityAvailability {
	if interval == nil {
		return GranularityAvailability{}
	}
	if _, ok := MatchRangePreset(interval, now); ok {
		return GranularityAvailability{}
	}
	span := interval.SpanDays()
	return GranularityAvailability{
		Day:   true,
		Week:  span > weekSpan,
		Month: span > maxDaySpan,
	}
}

// BuildLabels renders the x-axis labels for the interval at the given
// granularity. A nil interval yields a single label for the current day.
func BuildLabels(interval *DateInterval, g Granularity, now time.Time) []string {
	if interval == nil {
		return []string{dayOf(now).Format("02.01")}
	}
	start := dayOf(interval.Start)
	end := dayOf(interval.End)

	switch g {
	case GranularityWeek:
		return weekLabels(start, end)
	case GranularityMonth:
		var labels []string
		for m := startOfMonth(start); !m.After(end); m = m.AddDate(0, 1, 0) {
			labels = append(labels, m.Format("Jan 2006"))
		}
		return labels
	default:
		var labels []string
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			labels = append(labels, d.Format("02.01"))
		}
		return labels
	}
}

// weekLabels emits one label per calendar week overlapping the interval,
// clipping the first and last week to the interval bounds.
func weekLabels(start, end time.Time) []string {
	var labels []string
	for w := startOfWeek(start); !w.After(end); w = w.AddDate(0, 0, 7) {
		weekEnd := w.AddDate(0, 0, 6)
		from := w
		if from.Before(start) {
			from = start
		}
		to := weekEnd
		if to.After(end) {
			to = end
		}
		labels = append(labels, from.Format("02.01")+"-"+to.Format("02.01"))
	}
	return labels
}

// Weeks run Monday through Sunday.
func startOfWeek(t time.Time) time.Time {
	d := dayOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}
