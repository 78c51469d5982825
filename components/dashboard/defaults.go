package dashboard

// MainWidgetID is the identifier of the anchor chart widget. It always
// exists and always lives in the row layout.
const MainWidgetID = "main"

// DetailsTableID and ContentTableID identify the two grids whose view state
// is persisted per table.
const (
	DetailsTableID = "details"
	ContentTableID = "content"
)

var defaultMetricDefinitions = []MetricDefinition{
	{Key: MetricSpend, Label: "Spend", Unit: UnitMoney, Base: 1200, Volatility: 0.3, Chartable: true},
	{Key: MetricClicks, Label: "Clicks", Unit: UnitCount, Base: 2500, Volatility: 0.25, Chartable: true},
	{Key: MetricUnits, Label: "Units", Unit: UnitCount, Base: 180, Volatility: 0.3, Chartable: true},
	{Key: MetricSales, Label: "Sales", Unit: UnitMoney, Base: 4800, Volatility: 0.3},
	{Key: MetricConversion, Label: "Conversion", Unit: UnitPercent, Base: 7.2, Volatility: 0.1, Chartable: true},
	{Key: MetricCommissionRate, Label: "Commission Rate", Unit: UnitPercent, Base: 7, Volatility: 0.05},
	{Key: MetricProfit, Label: "Profit", Unit: UnitMoney, Base: 1500, Volatility: 0.35, Chartable: true},
	{Key: MetricPromotionalCosts, Label: "Promotional Costs", Unit: UnitMoney, Base: 260, Volatility: 0.2},
	{Key: MetricTotalExpenses, Label: "Total Expenses", Unit: UnitMoney, Base: 900, Volatility: 0.25, Chartable: true},
}

// DefaultMetricDefinitions returns a copy of the built-in metric catalog.
func DefaultMetricDefinitions() []MetricDefinition {
	out := make([]MetricDefinition, len(defaultMetricDefinitions))
	copy(out, defaultMetricDefinitions)
	return out
}

// TileMetrics is the canonical tile order: every metric in catalog order.
func TileMetrics() []MetricKey {
	out := make([]MetricKey, 0, len(defaultMetricDefinitions))
	for _, def := range defaultMetricDefinitions {
		out = append(out, def.Key)
	}
	return out
}

// DefaultChartWidgets returns the single-widget board: the main chart with
// every chartable metric enabled.
func DefaultChartWidgets() []ChartWidget {
	return []ChartWidget{{ID: MainWidgetID, Selection: DefaultMetricSelection()}}
}

var defaultDetailsColumns = []ColumnDef{
	{ID: "product", Header: "Product", Width: 220},
	{ID: "creator", Header: "Creator", Width: 160},
	{ID: "units", Header: "Units", Width: 90},
	{ID: "clicks", Header: "Clicks", Width: 90},
	{ID: "conversion", Header: "Conversion", Width: 110},
	{ID: "commissionRate", Header: "Commission", Width: 110},
	{ID: "margin", Header: "Margin", Width: 90},
	{ID: "spend", Header: "Spend", Width: 100},
	{ID: "sales", Header: "Sales", Width: 100},
	{ID: "profit", Header: "Profit", Width: 100},
	{ID: "promotionalCosts", Header: "Promo Costs", Width: 110},
	{ID: "totalExpenses", Header: "Total Expenses", Width: 120},
}

var defaultContentColumns = []ColumnDef{
	{ID: "date", Header: "Date", Width: 110},
	{ID: "product", Header: "Product", Width: 220},
	{ID: "creator", Header: "Creator", Width: 160},
	{ID: "campaign", Header: "Campaign", Width: 130},
	{ID: "link", Header: "Link", Width: 260},
}

// DefaultDetailsColumns returns the column catalog of the details grid.
func DefaultDetailsColumns() []ColumnDef {
	out := make([]ColumnDef, len(defaultDetailsColumns))
	copy(out, defaultDetailsColumns)
	return out
}

// DefaultContentColumns returns the column catalog of the content grid.
func DefaultContentColumns() []ColumnDef {
	out := make([]ColumnDef, len(defaultContentColumns))
	copy(out, defaultContentColumns)
	return out
}
