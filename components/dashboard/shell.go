package dashboard

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrGranularityUnavailable rejects a granularity pick the current interval
// does not allow.
var ErrGranularityUnavailable = errors.New("dashboard: granularity not available for interval")

// Board sections a viewer can jump to.
const (
	SectionTiles   = "tiles"
	SectionCharts  = "charts"
	SectionDetails = "details"
	SectionContent = "content"
	SectionSummary = "summary"
)

// Derived summary-panel cost ratios.
const (
	costPriceRatio = 0.30
	holdsRatio     = 0.05
)

// ShellOptions configures a Shell. Zero values fall back to an in-memory
// store, the demo dataset, the default registry, a discarding hub and the
// real clock.
type ShellOptions struct {
	Store    Store
	Hub      *SignalHub
	Logger   logrus.FieldLogger
	Clock    func() time.Time
	Dataset  *Dataset
	Registry *Registry
	Rand     *rand.Rand
}

func (o *ShellOptions) normalize() {
	if o.Store == nil {
		o.Store = NewMemoryStore()
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Dataset == nil {
		o.Dataset = NewDemoDataset(o.Clock())
	}
	if o.Registry == nil {
		o.Registry = NewRegistry()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(o.Clock().UnixNano()))
	}
}

// Shell is the top-level board session: filters and interval, the chart
// board, the tile strip, the two grids and the summary panel, all
// rehydrated from one store. Like its parts it models a single viewer and
// is not safe for concurrent use.
type Shell struct {
	store    Store
	hub      *SignalHub
	log      logrus.FieldLogger
	clock    func() time.Time
	rng      *rand.Rand
	dataset  *Dataset
	registry *Registry

	board   *ChartBoard
	tiles   *TileBar
	details *GridAdapter
	content *GridAdapter

	filters       FilterSet
	interval      *DateInterval
	choice        Granularity
	individual    *IndividualFilter
	summaryOpen   bool
	activeSection string
}

// NewShell builds a board session from opts and rehydrates every persisted
// piece of view state.
func NewShell(opts ShellOptions) *Shell {
	opts.normalize()
	s := &Shell{
		store:         opts.Store,
		hub:           opts.Hub,
		log:           opts.Logger,
		clock:         opts.Clock,
		rng:           opts.Rand,
		dataset:       opts.Dataset,
		registry:      opts.Registry,
		activeSection: SectionCharts,
	}
	sub := BoardOptions{Store: opts.Store, Hub: opts.Hub, Logger: opts.Logger, Clock: opts.Clock}
	s.board = NewChartBoard(sub)
	s.tiles = NewTileBar(sub)
	s.details = NewGridAdapter(DetailsTableID, DefaultDetailsColumns(), sub)
	s.content = NewGridAdapter(ContentTableID, DefaultContentColumns(), sub)

	s.filters = FilterSet{
		Campaign: loadJSON(s.store, KeyFilterCampaign, "", s.log),
		Creator:  loadJSON(s.store, KeyFilterCreator, "", s.log),
		Product:  loadJSON(s.store, KeyFilterProduct, "", s.log),
		Link:     loadJSON(s.store, KeyFilterLink, "", s.log),
	}
	s.interval = loadJSON(s.store, KeyInterval, (*DateInterval)(nil), s.log)
	s.choice = loadJSON(s.store, KeyGranularity, Granularity(""), s.log)
	s.summaryOpen = loadJSON(s.store, KeySummaryOpen, false, s.log)
	s.applyGranularityFallback()
	return s
}

// Board returns the chart board.
func (s *Shell) Board() *ChartBoard { return s.board }

// Tiles returns the tile strip.
func (s *Shell) Tiles() *TileBar { return s.tiles }

// DetailsGrid returns the performance grid adapter.
func (s *Shell) DetailsGrid() *GridAdapter { return s.details }

// ContentGrid returns the placements grid adapter.
func (s *Shell) ContentGrid() *GridAdapter { return s.content }

// Dataset returns the reference data.
func (s *Shell) Dataset() *Dataset { return s.dataset }

// Registry returns the metric catalog.
func (s *Shell) Registry() *Registry { return s.registry }

// Filters returns the current selector state.
func (s *Shell) Filters() FilterSet { return s.filters }

// SetCampaignFilter sets or clears (empty value) the campaign selector. Any
// selector change drops an active drill-down filter.
func (s *Shell) SetCampaignFilter(v string) {
	s.filters.Campaign = v
	s.persistFilter(KeyFilterCampaign, v)
	s.clearIndividualLocked()
}

// SetCreatorFilter sets or clears the creator selector.
func (s *Shell) SetCreatorFilter(v string) {
	s.filters.Creator = v
	s.persistFilter(KeyFilterCreator, v)
	s.clearIndividualLocked()
}

// SetProductFilter sets or clears the product selector.
func (s *Shell) SetProductFilter(v string) {
	s.filters.Product = v
	s.persistFilter(KeyFilterProduct, v)
	s.clearIndividualLocked()
}

// SetLinkFilter sets or clears the content-link selector.
func (s *Shell) SetLinkFilter(v string) {
	s.filters.Link = v
	s.persistFilter(KeyFilterLink, v)
	s.clearIndividualLocked()
}

// ClearFilters drops every selector.
func (s *Shell) ClearFilters() {
	s.filters = FilterSet{}
	deleteKey(s.store, KeyFilterCampaign, s.log)
	deleteKey(s.store, KeyFilterCreator, s.log)
	deleteKey(s.store, KeyFilterProduct, s.log)
	deleteKey(s.store, KeyFilterLink, s.log)
	s.clearIndividualLocked()
}

func (s *Shell) persistFilter(key, value string) {
	if value == "" {
		deleteKey(s.store, key, s.log)
		return
	}
	saveJSON(s.store, key, value, s.log)
}

// Interval returns a copy of the active interval, nil when unset.
func (s *Shell) Interval() *DateInterval {
	if s.interval == nil {
		return nil
	}
	iv := *s.interval
	return &iv
}

// SetInterval replaces the active interval (nil clears it), drops any
// drill-down filter and downgrades the granularity choice if the new span
// no longer allows it.
func (s *Shell) SetInterval(interval *DateInterval) {
	if interval == nil {
		s.interval = nil
		deleteKey(s.store, KeyInterval, s.log)
	} else {
		iv := NewDateInterval(interval.Start, interval.End)
		s.interval = &iv
		saveJSON(s.store, KeyInterval, iv, s.log)
	}
	s.clearIndividualLocked()
	s.applyGranularityFallback()
}

// SetPreset resolves a range preset against the clock and applies it.
func (s *Shell) SetPreset(preset RangePreset) error {
	iv, err := PresetInterval(preset, s.clock())
	if err != nil {
		return err
	}
	s.SetInterval(&iv)
	return nil
}

// GranularityChoice returns the viewer's explicit pick, empty when they
// never chose.
func (s *Shell) GranularityChoice() Granularity { return s.choice }

// SetGranularity stores an explicit granularity pick. Picks outside the
// interval's availability are rejected.
func (s *Shell) SetGranularity(g Granularity) error {
	if !s.Availability().Enabled(g) {
		return ErrGranularityUnavailable
	}
	s.choice = g
	saveJSON(s.store, KeyGranularity, g, s.log)
	return nil
}

// Granularity resolves the effective bucketing for the active interval.
func (s *Shell) Granularity() Granularity {
	return ResolveGranularity(s.interval, s.choice, s.clock())
}

// Availability reports which granularities the viewer may pick now.
func (s *Shell) Availability() GranularityAvailability {
	return ResolveAvailability(s.interval, s.clock())
}

// applyGranularityFallback downgrades a stored pick the interval no longer
// allows, preferring the finest available bucket.
func (s *Shell) applyGranularityFallback() {
	if s.choice == "" {
		return
	}
	avail := s.Availability()
	if avail.Enabled(s.choice) {
		return
	}
	if fb, ok := avail.Fallback(); ok {
		s.choice = fb
		saveJSON(s.store, KeyGranularity, fb, s.log)
	}
}

// Labels renders the x-axis labels for the active interval.
func (s *Shell) Labels() []string {
	return BuildLabels(s.interval, s.Granularity(), s.clock())
}

// DrillDown narrows the content grid to one creator or product and jumps to
// that section. The drill-down replaces the selector filters for the
// content grid until a selector or the interval changes.
func (s *Shell) DrillDown(f IndividualFilter) {
	s.individual = &f
	s.activeSection = SectionContent
}

// IndividualFilter returns a copy of the drill-down filter, nil when idle.
func (s *Shell) IndividualFilter() *IndividualFilter {
	if s.individual == nil {
		return nil
	}
	f := *s.individual
	return &f
}

// ClearDrillDown drops the drill-down filter.
func (s *Shell) ClearDrillDown() { s.individual = nil }

func (s *Shell) clearIndividualLocked() { s.individual = nil }

// Metrics aggregates the filtered dataset.
func (s *Shell) Metrics() MetricsComparison {
	return ComputeMetrics(s.dataset, s.filters, s.interval)
}

// DetailRows returns the filtered performance rows for the details grid.
func (s *Shell) DetailRows() []MetricRow {
	return FilterMetricRows(s.dataset, s.filters, s.interval)
}

// ContentRows returns the filtered placement rows for the content grid.
func (s *Shell) ContentRows() []ContentRow {
	return FilterContentRows(s.dataset, s.filters, s.individual, s.interval)
}

// Series generates the synthetic series for one metric over the current
// labels.
func (s *Shell) Series(key MetricKey) ([]float64, error) {
	def, ok := s.registry.Definition(key)
	if !ok {
		return nil, fmt.Errorf("dashboard: unknown metric %q", key)
	}
	return GenerateSeries(len(s.Labels()), def.Shape(), s.rng), nil
}

// SummaryOpen reports whether the summary panel shows.
func (s *Shell) SummaryOpen() bool { return s.summaryOpen }

// SetSummaryOpen persists the panel state and signals peers.
func (s *Shell) SetSummaryOpen(open bool) {
	s.summaryOpen = open
	saveJSON(s.store, KeySummaryOpen, open, s.log)
	if s.hub != nil {
		payload := []byte("false")
		if open {
			payload = []byte("true")
		}
		s.hub.Publish(StateEvent{Key: KeySummaryOpen, Payload: payload})
	}
}

// ScrollTo records the section the viewer jumped to.
func (s *Shell) ScrollTo(section string) {
	switch section {
	case SectionTiles, SectionCharts, SectionDetails, SectionContent, SectionSummary:
		s.activeSection = section
	}
}

// ActiveSection returns the last section jumped to.
func (s *Shell) ActiveSection() string { return s.activeSection }

// SummaryLine is one labelled value of the summary panel.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummarySnapshot is the rendered summary panel.
type SummarySnapshot struct {
	Period string        `json:"period"`
	Lines  []SummaryLine `json:"lines"`
}

// Summary renders the summary panel over the filtered dataset: the raw
// aggregates plus the derived cost lines (commission in currency, a 30%
// cost price and a 5% marketplace hold, both off sales).
func (s *Shell) Summary() SummarySnapshot {
	rows := FilterMetricRows(s.dataset, s.filters, s.interval)

	var sales, profit, promo, expenses, rateSum float64
	var units, clicks int
	for _, row := range rows {
		sales += row.Sales
		profit += row.Profit
		promo += row.PromotionalCosts
		expenses += row.TotalExpenses
		rateSum += row.CommissionRate
		units += row.Units
		clicks += row.Clicks
	}
	var conversion, rate float64
	if len(rows) > 0 {
		conversion = float64(units) / math.Max(float64(clicks), 1) * 100
		rate = rateSum / float64(len(rows))
	}
	promoShare := 0.0
	if sales > 0 {
		promoShare = promo / sales * 100
	}

	period := "All time"
	if s.interval != nil {
		period = s.interval.Start.Format("02.01.2006") + " - " + s.interval.End.Format("02.01.2006")
	}

	return SummarySnapshot{
		Period: period,
		Lines: []SummaryLine{
			{Label: "Sales", Value: money(sales)},
			{Label: "Units", Value: fmt.Sprintf("%d", units)},
			{Label: "Clicks", Value: fmt.Sprintf("%d", clicks)},
			{Label: "Conversion", Value: formatPercent(conversion)},
			{Label: "Promotional Costs", Value: fmt.Sprintf("%s (%s of sales)", money(promo), formatPercent(promoShare))},
			{Label: "Commission", Value: fmt.Sprintf("%s (%s)", money(sales*rate/100), formatPercent(rate))},
			{Label: "Cost Price", Value: money(sales * costPriceRatio)},
			{Label: "Marketplace Holds", Value: money(sales * holdsRatio)},
			{Label: "Profit", Value: money(profit)},
			{Label: "Total Expenses", Value: money(expenses)},
		},
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
