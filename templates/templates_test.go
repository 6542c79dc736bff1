package templates

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"testing"

	"github.com/presencedash/models"
	"github.com/presencedash/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEscapesUserNames(t *testing.T) {
	var buf bytes.Buffer
	err := Index(IndexData{
		PageID:      "p1",
		View:        "presence_weekday",
		Title:       "Presence by weekday",
		Nav:         []NavItem{{Name: "presence_weekday", Description: "Presence by weekday", Active: true}},
		Users:       []models.User{{ID: 5, Name: "<b>Anna</b>"}},
		ChartAssets: []string{"https://cdn.example.com/echarts.min.js"},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<option value="5">&lt;b&gt;Anna&lt;/b&gt;</option>`)
	assert.Contains(t, out, `/statistics/presence_weekday/chart?page=p1`)
	assert.Contains(t, out, `<li class="active"><a href="/statistics/presence_weekday/">Presence by weekday</a></li>`)

	// echarts is loaded by the page so chart fragments only carry their init script.
	end := strings.Index(out, "</head>")
	require.Positive(t, end)
	assert.Contains(t, out[:end], `<script src="https://cdn.example.com/echarts.min.js"></script>`)
}

func TestIndexShowsMessage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Index(IndexData{View: "mean_time_month", Message: "Could not load the user list."}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `<div id="chart_div"><p class="message">Could not load the user list.</p></div>`)
	assert.NotContains(t, buf.String(), `class="active"`)
}

func TestChartFragment(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(views.Snapshot{
		Visible: true,
		Content: template.HTML(`<div id="presence_chart"></div>`),
		Rows:    [][]string{{"Mon", "00:30:00"}},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<div id="presence_chart"></div>`)
	assert.Contains(t, buf.String(), `<tr><td>Mon</td><td>00:30:00</td></tr>`)

	buf.Reset()
	err = Chart(views.Snapshot{Message: "User details not found."}).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, `<p class="message">User details not found.</p>`, buf.String())
}

func TestAvatarFragment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Avatar(views.Avatar{URL: "https://intranet.example.com/u/5"}).Render(context.Background(), &buf))
	assert.Equal(t, `<img id="user_avatar_img" src="https://intranet.example.com/u/5" alt="avatar">`, buf.String())
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Error("Unknown view").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `<p class="message">Unknown view</p>`)
}
