package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns a chart widget into go-echarts HTML. Money metrics
// plot as lines on the primary axis; count and percent metrics get their
// own value axes and render as bars behind the lines.
type ChartRenderer struct {
	registry   *Registry
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer over the metric catalog.
func NewChartRenderer(registry *Registry, options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		registry: registry,
		cache:    sharedChartCache,
		theme:    types.ThemeWesteros,
	}
	if r.registry == nil {
		r.registry = NewRegistry()
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render produces chart HTML for the widget over the given label window.
// An empty metric selection renders an empty chart frame rather than
// failing.
func (r *ChartRenderer) Render(widget ChartWidget, labels []string, rng *rand.Rand) (string, error) {
	renderFn := func() (string, error) {
		return r.render(widget, labels, rng)
	}
	if r.cache == nil {
		return renderFn()
	}
	return r.cache.GetOrRender(renderKey(widget.ID, widget.Selection, labels), renderFn)
}

func (r *ChartRenderer) render(widget ChartWidget, labels []string, rng *rand.Rand) (string, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(widget.ID)...)
	line.SetXAxis(labels)
	line.ExtendYAxis(opts.YAxis{Type: "value", Name: "count"})
	line.ExtendYAxis(opts.YAxis{Type: "value", Name: "%", Max: 100})

	bar := charts.NewBar()
	bar.SetXAxis(labels)

	overlay := false
	for _, key := range widget.Selection.Keys() {
		def, ok := r.registry.Definition(key)
		if !ok {
			return "", fmt.Errorf("dashboard: unknown metric %q", key)
		}
		points := GenerateSeries(len(labels), def.Shape(), rng)
		switch def.Unit {
		case UnitCount:
			bar.AddSeries(def.Label, toBarData(points), charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}))
			overlay = true
		case UnitPercent:
			line.AddSeries(def.Label, toLineData(points), charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 2, Smooth: opts.Bool(true)}))
		default:
			line.AddSeries(def.Label, toLineData(points), charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		}
	}
	if overlay {
		line.Overlap(bar)
	}
	return renderChart(line)
}

func (r *ChartRenderer) globalChartOptions(widgetID string) []charts.GlobalOpts {
	title := "Performance"
	if widgetID != MainWidgetID {
		title = "Performance (" + widgetID + ")"
	}
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toBarData(points []float64) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, v := range points {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func toLineData(points []float64) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, v := range points {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
