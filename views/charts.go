package views

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/google/uuid"
	"github.com/presencedash/models"
)

// ChartKind selects how a table is drawn.
type ChartKind int

const (
	ChartColumn ChartKind = iota
	ChartPie
	ChartTimeline
)

func (k ChartKind) String() string {
	switch k {
	case ChartColumn:
		return "column"
	case ChartPie:
		return "pie"
	case ChartTimeline:
		return "timeline"
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

type ChartOptions struct {
	XAxisName string
	YAxisName string
	// Theme overrides the renderer's theme when set.
	Theme string
}

// ChartSpec picks the chart kind and its presentation. It is fixed per view.
type ChartSpec struct {
	Kind     ChartKind
	Title    string
	Subtitle string
	Options  ChartOptions
}

// clockFormatter turns seconds since midnight into HH:MM:SS on the browser
// side, for axis labels that go-echarts computes itself.
const clockFormatter = `function (value) {
	var s = Math.floor(value) % 86400;
	var pad = function (n) { return (n < 10 ? '0' : '') + n; };
	return pad(Math.floor(s / 3600)) + ':' + pad(Math.floor(s % 3600 / 60)) + ':' + pad(s % 60);
}`

// Tooltips show the data item name, which already carries the formatted
// cell values. The transparent offset series of a timeline shows nothing.
const itemNameTooltip = `function (params) {
	return params.seriesName === 'offset' ? '' : params.name;
}`

// assetsHost serves echarts and its themes. The page loads them once in its
// head; rendered fragments carry only the element and its init script.
const assetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

type chart interface {
	RenderSnippet() render.ChartSnippet
}

// newChartID returns an element id that is also a valid JS identifier
// suffix. The init script declares a global per id, so every render needs
// a fresh one.
func newChartID() string {
	return "presence_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ChartRenderer draws tables with go-echarts.
type ChartRenderer struct {
	Theme string
}

func NewChartRenderer(theme string) *ChartRenderer {
	return &ChartRenderer{Theme: theme}
}

// Assets lists the script URLs a page must load before any chart fragment
// is swapped in: echarts itself and every theme a view may use.
func (cr *ChartRenderer) Assets() []string {
	var a opts.Assets
	a.InitAssets()
	themes := []string{cr.Theme}
	for _, cfg := range All {
		themes = append(themes, cfg.Chart.Options.Theme)
	}
	for _, theme := range themes {
		if theme != "" && theme != "white" && theme != "dark" {
			a.JSAssets.Add("themes/" + theme + ".js")
		}
	}
	a.Validate(assetsHost)
	return a.JSAssets.Values
}

// Render draws table into target, replacing whatever target showed before.
// The content is an HTML fragment: the chart element followed by its init
// script, with a chart id unique to this render.
func (cr *ChartRenderer) Render(target *Surface, table *models.Table, spec ChartSpec) (err error) {
	var c chart
	switch spec.Kind {
	case ChartColumn:
		c, err = cr.columnChart(table, spec)
	case ChartPie:
		c, err = cr.pieChart(table, spec)
	case ChartTimeline:
		c, err = cr.timelineChart(table, spec)
	default:
		err = fmt.Errorf("unknown chart kind %s", spec.Kind)
	}
	if err != nil {
		return err
	}

	// go-echarts panics when its templates fail to execute.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to render %s chart: %v", spec.Kind, r)
		}
	}()
	snippet := c.RenderSnippet()
	target.replace(template.HTML(snippet.Element+snippet.Script), table.Display())
	return nil
}

func (cr *ChartRenderer) theme(spec ChartSpec) string {
	if spec.Options.Theme != "" {
		return spec.Options.Theme
	}
	return cr.Theme
}

func (cr *ChartRenderer) globalOptions(spec ChartSpec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:      cr.theme(spec),
			ChartID:    newChartID(),
			AssetsHost: assetsHost,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    spec.Title,
			Subtitle: spec.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:            opts.Bool(true),
			Trigger:         "item",
			Formatter:       opts.FuncOpts(itemNameTooltip),
			BackgroundColor: "rgba(255, 255, 255, 0.9)",
			BorderColor:     "#ccc",
		}),
	}
}

// cellValue is the number a cell is plotted at.
func cellValue(cell any) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case models.TimeOfDay:
		return float64(v.Seconds()), nil
	case models.DateTime:
		return float64(v.Time.Seconds()), nil
	}
	return 0, fmt.Errorf("cell %v (%T) cannot be plotted", cell, cell)
}

func labels(table *models.Table) []string {
	out := make([]string, table.Len())
	for i, row := range table.Rows() {
		out[i] = models.FormatCell(row[0])
	}
	return out
}

func requireColumns(table *models.Table, kind ChartKind, n int) error {
	if got := len(table.Columns()); got < n {
		return fmt.Errorf("%s chart needs %d columns, table has %d", kind, n, got)
	}
	return nil
}

// columnChart plots column 0 as categories against every other column.
func (cr *ChartRenderer) columnChart(table *models.Table, spec ChartSpec) (*charts.Bar, error) {
	if err := requireColumns(table, ChartColumn, 2); err != nil {
		return nil, err
	}
	columns := table.Columns()
	allTime := true
	for _, col := range columns[1:] {
		allTime = allTime && col.Kind.IsTime()
	}

	yAxis := opts.YAxis{
		Name:         spec.Options.YAxisName,
		NameLocation: "middle",
		NameGap:      70,
		Min:          0,
	}
	if allTime {
		yAxis.AxisLabel = &opts.AxisLabel{Formatter: opts.FuncOpts(clockFormatter)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(cr.globalOptions(spec)...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: spec.Options.XAxisName}),
		charts.WithYAxisOpts(yAxis),
	)

	bar.SetXAxis(labels(table))
	for j := 1; j < len(columns); j++ {
		items := make([]opts.BarData, 0, table.Len())
		for _, row := range table.Rows() {
			v, err := cellValue(row[j])
			if err != nil {
				return nil, err
			}
			items = append(items, opts.BarData{
				Name:  models.FormatCell(row[0]) + ": " + models.FormatCell(row[j]),
				Value: v,
			})
		}
		bar.AddSeries(columns[j].Name, items)
	}
	return bar, nil
}

// pieChart uses column 0 as slice name and column 1 as magnitude.
func (cr *ChartRenderer) pieChart(table *models.Table, spec ChartSpec) (*charts.Pie, error) {
	if err := requireColumns(table, ChartPie, 2); err != nil {
		return nil, err
	}
	columns := table.Columns()

	items := make([]opts.PieData, 0, table.Len())
	for _, row := range table.Rows() {
		v, err := cellValue(row[1])
		if err != nil {
			return nil, err
		}
		items = append(items, opts.PieData{Name: models.FormatCell(row[0]), Value: v})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(cr.globalOptions(spec)...)
	pie.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "bottom",
		}),
	)
	pie.AddSeries(columns[1].Name, items)
	return pie, nil
}

// timelineChart draws one lane per row with a bar from start to end. The
// bar is a visible duration stacked on a transparent offset.
func (cr *ChartRenderer) timelineChart(table *models.Table, spec ChartSpec) (*charts.Bar, error) {
	if err := requireColumns(table, ChartTimeline, 3); err != nil {
		return nil, err
	}

	offsets := make([]opts.BarData, 0, table.Len())
	durations := make([]opts.BarData, 0, table.Len())
	for _, row := range table.Rows() {
		start, err := cellValue(row[1])
		if err != nil {
			return nil, err
		}
		end, err := cellValue(row[2])
		if err != nil {
			return nil, err
		}
		span := end - start
		if span < 0 {
			span = 0
		}
		name := fmt.Sprintf("%s: %s - %s", models.FormatCell(row[0]), models.FormatCell(row[1]), models.FormatCell(row[2]))
		offsets = append(offsets, opts.BarData{
			Name:      name,
			Value:     start,
			ItemStyle: &opts.ItemStyle{Color: "transparent"},
		})
		durations = append(durations, opts.BarData{Name: name, Value: span})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(cr.globalOptions(spec)...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "value",
			Name:      spec.Options.XAxisName,
			Min:       0,
			Max:       models.SecondsPerDay,
			AxisLabel: &opts.AxisLabel{Formatter: opts.FuncOpts(clockFormatter)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Name: spec.Options.YAxisName,
		}),
	)

	bar.SetXAxis(labels(table))
	bar.AddSeries("offset", offsets, charts.WithBarChartOpts(opts.BarChart{Stack: "interval"}))
	bar.AddSeries("presence", durations, charts.WithBarChartOpts(opts.BarChart{Stack: "interval"}))
	bar.XYReversal()
	return bar, nil
}
