package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-metrics-board/components/dashboard"
)

type cli struct {
	Store string `type:"path" help:"Path to the Badger state directory. Empty runs on an in-memory store."`
	Debug bool   `help:"Enable debug logging."`

	Seed    seedCmd    `cmd:"" help:"Initialize a board state directory with the default layout."`
	Labels  labelsCmd  `cmd:"" help:"Print the x-axis labels for an interval."`
	Summary summaryCmd `cmd:"" help:"Print the summary panel for the current filters."`
	Presets presetsCmd `cmd:"" help:"Export or import saved presets."`
	Render  renderCmd  `cmd:"" help:"Render a chart widget to an HTML file."`
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("Local workbench for metrics-board view state."),
		kong.UsageOnError(),
		kong.BindTo(root, (*shellProvider)(nil)),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

// shellProvider lets subcommands open the shared store lazily.
type shellProvider interface {
	openShell() (*dashboard.Shell, func() error, error)
}

func (c *cli) openShell() (*dashboard.Shell, func() error, error) {
	log := logrus.New()
	if c.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	opts := dashboard.ShellOptions{Logger: log}
	closeFn := func() error { return nil }
	if c.Store != "" {
		store, closer, err := dashboard.OpenBadgerStore(c.Store)
		if err != nil {
			return nil, nil, fmt.Errorf("boardctl: open store %s: %w", c.Store, err)
		}
		opts.Store = store
		closeFn = closer
	}
	return dashboard.NewShell(opts), closeFn, nil
}

type seedCmd struct{}

func (cmd *seedCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	shell.Board().ResetToDefault()
	shell.Tiles().ResetToDefault()
	shell.DetailsGrid().ResetToDefault()
	shell.ContentGrid().ResetToDefault()
	shell.SetSummaryOpen(false)

	fmt.Fprintf(os.Stdout, "seeded board with %d widgets and %d tiles\n",
		len(shell.Board().Widgets()), len(shell.Tiles().VisibleOrdered()))
	return nil
}

type labelsCmd struct {
	Preset      string `help:"Range preset (today, yesterday, this_week, last_week, this_month, last_month, september_2025, last_3_months)."`
	From        string `help:"Interval start, YYYY-MM-DD."`
	To          string `help:"Interval end, YYYY-MM-DD."`
	Granularity string `help:"Explicit granularity (day, week, month)."`
}

func (cmd *labelsCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := applyInterval(shell, cmd.Preset, cmd.From, cmd.To); err != nil {
		return err
	}
	if cmd.Granularity != "" {
		if err := shell.SetGranularity(dashboard.Granularity(cmd.Granularity)); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stdout, "granularity: %s\n", shell.Granularity())
	for _, label := range shell.Labels() {
		fmt.Fprintln(os.Stdout, label)
	}
	return nil
}

type summaryCmd struct {
	Campaign string `help:"Filter by campaign."`
	Creator  string `help:"Filter by creator."`
	Product  string `help:"Filter by product id."`
	Link     string `help:"Filter by content link."`
	Preset   string `help:"Range preset."`
	From     string `help:"Interval start, YYYY-MM-DD."`
	To       string `help:"Interval end, YYYY-MM-DD."`
}

func (cmd *summaryCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := applyInterval(shell, cmd.Preset, cmd.From, cmd.To); err != nil {
		return err
	}
	shell.SetCampaignFilter(cmd.Campaign)
	shell.SetCreatorFilter(cmd.Creator)
	shell.SetProductFilter(cmd.Product)
	shell.SetLinkFilter(cmd.Link)

	snapshot := shell.Summary()
	fmt.Fprintf(os.Stdout, "period: %s\n", snapshot.Period)
	for _, line := range snapshot.Lines {
		fmt.Fprintf(os.Stdout, "%-20s %s\n", line.Label, line.Value)
	}
	return nil
}

type presetsCmd struct {
	Export presetsExportCmd `cmd:"" help:"Write every saved preset to a JSON file."`
	Import presetsImportCmd `cmd:"" help:"Validate and merge presets from a JSON file."`
}

type presetsExportCmd struct {
	Out string `type:"path" help:"Output path (defaults to <board-name>.json in the working directory)."`
}

func (cmd *presetsExportCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	doc := dashboard.ExportPresets(shell)
	out := cmd.Out
	if out == "" {
		out = strcase.ToKebab("metrics board presets") + ".json"
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("boardctl: encode presets: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("boardctl: write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "exported %d chart, %d tile preset(s) to %s\n", len(doc.Charts), len(doc.Tiles), out)
	return nil
}

type presetsImportCmd struct {
	In string `required:"" type:"path" help:"Preset document to import."`
}

func (cmd *presetsImportCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	raw, err := os.ReadFile(cmd.In)
	if err != nil {
		return fmt.Errorf("boardctl: read %s: %w", cmd.In, err)
	}
	doc, err := dashboard.ImportPresets(shell, raw, dashboard.NewJSONSchemaValidator())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "imported %d chart, %d tile preset(s)\n", len(doc.Charts), len(doc.Tiles))
	return nil
}

type renderCmd struct {
	Widget string `default:"main" help:"Widget id to render."`
	Out    string `type:"path" help:"Output HTML path (defaults to <widget>.html)."`
	Preset string `help:"Range preset."`
	From   string `help:"Interval start, YYYY-MM-DD."`
	To     string `help:"Interval end, YYYY-MM-DD."`
}

func (cmd *renderCmd) Run(_ context.Context, root shellProvider) error {
	shell, closeStore, err := root.openShell()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := applyInterval(shell, cmd.Preset, cmd.From, cmd.To); err != nil {
		return err
	}
	widget, ok := shell.Board().Widget(cmd.Widget)
	if !ok {
		return fmt.Errorf("boardctl: unknown widget %q", cmd.Widget)
	}
	renderer := dashboard.NewChartRenderer(shell.Registry(),
		dashboard.WithChartAssetsHost(dashboard.DefaultEChartsAssetsHost()))
	html, err := renderer.Render(widget, shell.Labels(), nil)
	if err != nil {
		return err
	}
	out := cmd.Out
	if out == "" {
		out = filepath.Clean(cmd.Widget + ".html")
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("boardctl: write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "rendered %s to %s\n", cmd.Widget, out)
	return nil
}

func applyInterval(shell *dashboard.Shell, preset, from, to string) error {
	if preset != "" {
		return shell.SetPreset(dashboard.RangePreset(preset))
	}
	if from == "" && to == "" {
		return nil
	}
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return fmt.Errorf("boardctl: parse --from: %w", err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return fmt.Errorf("boardctl: parse --to: %w", err)
	}
	iv := dashboard.NewDateInterval(start, end)
	shell.SetInterval(&iv)
	return nil
}
