package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	meanTimeSchema = []Column{{Name: "Weekday", Kind: KindText}, {Name: "Mean time (h:m:s)", Kind: KindTimeOfDay}}
	presenceSchema = []Column{{Name: "Weekday", Kind: KindText}, {Name: "Presence (s)", Kind: KindNumber}}
	startEndSchema = []Column{{Name: "Weekday", Kind: KindText}, {Name: "Start", Kind: KindDateTime}, {Name: "End", Kind: KindDateTime}}
)

func TestBuildTableEmptyPayload(t *testing.T) {
	tests := []struct {
		name   string
		schema []Column
		raw    string
	}{
		{"interval pairs", meanTimeSchema, `[]`},
		{"number pairs", presenceSchema, `[]`},
		{"number pairs header only", presenceSchema, `[["Weekday", "Presence (s)"]]`},
		{"start end", startEndSchema, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildTable(tt.schema, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, 0, table.Len())
			assert.Equal(t, tt.schema, table.Columns())
		})
	}
}

func TestBuildTableIntervalPairsKeepOrder(t *testing.T) {
	table, err := BuildTable(meanTimeSchema, []byte(`[["Mon", 3600], ["Tue", 7200]]`))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Mon", "01:00:00"}, {"Tue", "02:00:00"}}, table.Display())
	tod, ok := table.Rows()[0][1].(TimeOfDay)
	require.True(t, ok)
	assert.Equal(t, 3600, tod.Seconds())
}

func TestBuildTableDoesNotSort(t *testing.T) {
	raw := `[["Sun", 10], ["Mon", 20], ["Mon", 20], ["Fri", 30]]`
	table, err := BuildTable(meanTimeSchema, []byte(raw))
	require.NoError(t, err)

	var labels []string
	for _, row := range table.Display() {
		labels = append(labels, row[0])
	}
	assert.Equal(t, []string{"Sun", "Mon", "Mon", "Fri"}, labels)
}

func TestBuildTableStartEnd(t *testing.T) {
	table, err := BuildTable(startEndSchema, []byte(`{"Mon": {"start": "09:00:00", "end": "17:00:00"}}`))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	row := table.Rows()[0]
	assert.Equal(t, "Mon", row[0])
	assert.Equal(t, DateTime{Label: "Mon", Time: TimeOfDay{seconds: 9 * 3600}}, row[1])
	assert.Equal(t, DateTime{Label: "Mon", Time: TimeOfDay{seconds: 17 * 3600}}, row[2])
}

func TestBuildTableStartEndKeepsKeyOrder(t *testing.T) {
	raw := `{
		"Sun": {"start": "10:00:00", "end": "11:00:00"},
		"Mon": {"start": "09:00:00", "end": "17:00:00"},
		"Tue": {"start": "08:30:00", "end": "16:45:00"}
	}`
	table, err := BuildTable(startEndSchema, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Sun", "10:00:00", "11:00:00"},
		{"Mon", "09:00:00", "17:00:00"},
		{"Tue", "08:30:00", "16:45:00"},
	}, table.Display())
}

func TestBuildTableNumberPairs(t *testing.T) {
	raw := `[["Weekday", "Presence (s)"], ["Mon", 24123], ["Tue", 16564.5]]`
	table, err := BuildTable(presenceSchema, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Mon", "24123"}, {"Tue", "16564.5"}}, table.Display())
	assert.Equal(t, 24123.0, table.Rows()[0][1])
}

func TestBuildTableWrapsHugeSeconds(t *testing.T) {
	table, err := BuildTable(meanTimeSchema, []byte(`[["Mon", 1e20]]`))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Mon", "09:46:40"}}, table.Display())
}

func TestBuildTableMalformed(t *testing.T) {
	tests := []struct {
		name   string
		schema []Column
		raw    string
		row    int
	}{
		{"object for pairs", meanTimeSchema, `{"Mon": 1}`, -1},
		{"not json", meanTimeSchema, `<html>`, -1},
		{"null", meanTimeSchema, `null`, -1},
		{"short pair", meanTimeSchema, `[["Mon", 1], ["Tue"]]`, 1},
		{"string seconds", meanTimeSchema, `[["Mon", "1"]]`, 0},
		{"negative seconds", meanTimeSchema, `[["Mon", 10], ["Tue", -5]]`, 1},
		{"numeric label", presenceSchema, `[[1, 2]]`, 0},
		{"bad value after header", presenceSchema, `[["Weekday", "Presence (s)"], ["Mon", 1], ["Tue", "x"]]`, 2},
		{"bad label after header", presenceSchema, `[["Weekday", "Presence (s)"], [3, 1]]`, 1},
		{"list for start end", startEndSchema, `[]`, -1},
		{"missing end", startEndSchema, `{"Mon": {"start": "09:00:00"}}`, 0},
		{"bad clock", startEndSchema, `{"Mon": {"start": "09:00:00", "end": "17:00:00"}, "Tue": {"start": "9am", "end": "17:00:00"}}`, 1},
		{"trailing data", startEndSchema, `{} {}`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildTable(tt.schema, []byte(tt.raw))
			assert.Nil(t, table)
			var malformed *MalformedPayloadError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.row, malformed.Row)
		})
	}
}

func TestBuildTableUnsupportedSchema(t *testing.T) {
	_, err := BuildTable([]Column{{Name: "x", Kind: KindNumber}}, []byte(`[]`))
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}
