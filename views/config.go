package views

import (
	"strings"

	"github.com/presencedash/downloader"
	"github.com/presencedash/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config describes one metric view: where its data comes from, the table
// layout it is built into and how it is drawn.
type Config struct {
	Name        string
	Description string
	Metric      string
	Schema      []models.Column
	Chart       ChartSpec
}

// Title is the chart title, derived from the view name when the chart spec
// does not set one.
func (c Config) Title() string {
	if c.Chart.Title != "" {
		return c.Chart.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(c.Name, "_", " "))
}

var MeanTimeMonth = Config{
	Name:        "mean_time_month",
	Description: "Presence mean time by month",
	Metric:      downloader.MeanTimeMonth,
	Schema: []models.Column{
		{Name: "Month", Kind: models.KindText},
		{Name: "Mean time (h:m:s)", Kind: models.KindTimeOfDay},
	},
	Chart: ChartSpec{
		Kind:    ChartColumn,
		Options: ChartOptions{XAxisName: "Month", YAxisName: "Mean presence time"},
	},
}

var MeanTimeWeekday = Config{
	Name:        "mean_time_weekday",
	Description: "Presence mean time",
	Metric:      downloader.MeanTimeWeekday,
	Schema: []models.Column{
		{Name: "Weekday", Kind: models.KindText},
		{Name: "Mean time (h:m:s)", Kind: models.KindTimeOfDay},
	},
	Chart: ChartSpec{
		Kind:    ChartColumn,
		Options: ChartOptions{XAxisName: "Weekday"},
	},
}

var PresenceWeekday = Config{
	Name:        "presence_weekday",
	Description: "Presence by weekday",
	Metric:      downloader.PresenceWeekday,
	Schema: []models.Column{
		{Name: "Weekday", Kind: models.KindText},
		{Name: "Presence (s)", Kind: models.KindNumber},
	},
	Chart: ChartSpec{Kind: ChartPie},
}

var PresenceStartEnd = Config{
	Name:        "presence_start_end",
	Description: "Presence start-end",
	Metric:      downloader.PresenceStartEnd,
	Schema: []models.Column{
		{Name: "Weekday", Kind: models.KindText},
		{Name: "Start", Kind: models.KindDateTime},
		{Name: "End", Kind: models.KindDateTime},
	},
	Chart: ChartSpec{
		Kind:    ChartTimeline,
		Options: ChartOptions{XAxisName: "Time of day", YAxisName: "Weekday"},
	},
}

// All lists the views in navigation order.
var All = []Config{PresenceWeekday, MeanTimeWeekday, MeanTimeMonth, PresenceStartEnd}

// Lookup finds a view by name.
func Lookup(name string) (Config, bool) {
	for _, c := range All {
		if c.Name == name {
			return c, true
		}
	}
	return Config{}, false
}
