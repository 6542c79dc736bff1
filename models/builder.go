package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrUnsupportedSchema = errors.New("unsupported table schema")

type payloadShape int

const (
	shapeIntervalPairs payloadShape = iota
	shapeStartEnd
	shapeNumberPairs
)

func shapeOf(schema []Column) (payloadShape, error) {
	kinds := make([]ColumnKind, len(schema))
	for i, c := range schema {
		kinds[i] = c.Kind
	}
	switch {
	case len(kinds) == 2 && kinds[0] == KindText && kinds[1] == KindTimeOfDay:
		return shapeIntervalPairs, nil
	case len(kinds) == 2 && kinds[0] == KindText && kinds[1] == KindNumber:
		return shapeNumberPairs, nil
	case len(kinds) == 3 && kinds[0] == KindText && kinds[1] == KindDateTime && kinds[2] == KindDateTime:
		return shapeStartEnd, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnsupportedSchema, kinds)
}

// BuildTable converts a raw metric payload into a Table laid out by schema.
// The payload shape follows from the schema:
//
//	[Text, TimeOfDay]          [[label, seconds], ...]
//	[Text, Number]             [[label, number], ...], optional header row
//	[Text, DateTime, DateTime] {"label": {"start": "HH:MM:SS", "end": "HH:MM:SS"}, ...}
//
// Rows keep payload order. Nothing is filtered or aggregated.
func BuildTable(schema []Column, raw []byte) (*Table, error) {
	shape, err := shapeOf(schema)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &MalformedPayloadError{Row: -1, Reason: "empty response body"}
	}

	table := NewTable(schema)
	switch shape {
	case shapeIntervalPairs:
		err = buildIntervalPairs(table, raw)
	case shapeNumberPairs:
		err = buildNumberPairs(table, raw)
	case shapeStartEnd:
		err = buildStartEnd(table, raw)
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// decodePairs splits a JSON list of two element lists.
func decodePairs(raw []byte) ([][2]json.RawMessage, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &MalformedPayloadError{Row: -1, Reason: "expected a list of pairs", Err: err}
	}
	pairs := make([][2]json.RawMessage, len(rows))
	for i, row := range rows {
		var cells []json.RawMessage
		if err := json.Unmarshal(row, &cells); err != nil {
			return nil, &MalformedPayloadError{Row: i, Reason: "expected a [label, value] pair", Err: err}
		}
		if len(cells) != 2 {
			return nil, &MalformedPayloadError{Row: i, Reason: fmt.Sprintf("expected 2 cells, got %d", len(cells))}
		}
		pairs[i] = [2]json.RawMessage{cells[0], cells[1]}
	}
	return pairs, nil
}

func decodeLabel(row int, cell json.RawMessage) (string, error) {
	var label string
	if err := json.Unmarshal(cell, &label); err != nil {
		return "", &MalformedPayloadError{Row: row, Reason: "label is not a string", Err: err}
	}
	return label, nil
}

func decodeNumber(row int, cell json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(cell, &v); err != nil {
		return 0, &MalformedPayloadError{Row: row, Reason: "value is not a number", Err: err}
	}
	return v, nil
}

func buildIntervalPairs(table *Table, raw []byte) error {
	pairs, err := decodePairs(raw)
	if err != nil {
		return err
	}
	for i, p := range pairs {
		label, err := decodeLabel(i, p[0])
		if err != nil {
			return err
		}
		seconds, err := decodeNumber(i, p[1])
		if err != nil {
			return err
		}
		tod, err := SecondsToTimeOfDay(seconds)
		if err != nil {
			return atRow(err, i)
		}
		if err := table.AddRow(label, tod); err != nil {
			return &MalformedPayloadError{Row: i, Reason: "row does not fit schema", Err: err}
		}
	}
	return nil
}

func buildNumberPairs(table *Table, raw []byte) error {
	pairs, err := decodePairs(raw)
	if err != nil {
		return err
	}
	// Errors report payload row indices, header included.
	first := 0
	if len(pairs) > 0 && isJSONString(pairs[0][1]) {
		// Header row such as ["Weekday", "Presence (s)"].
		first = 1
	}
	for i := first; i < len(pairs); i++ {
		p := pairs[i]
		label, err := decodeLabel(i, p[0])
		if err != nil {
			return err
		}
		v, err := decodeNumber(i, p[1])
		if err != nil {
			return err
		}
		if err := table.AddRow(label, v); err != nil {
			return &MalformedPayloadError{Row: i, Reason: "row does not fit schema", Err: err}
		}
	}
	return nil
}

type startEnd struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// buildStartEnd walks the object with a token stream so the payload's key
// order survives.
func buildStartEnd(table *Table, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return &MalformedPayloadError{Row: -1, Reason: "expected an object", Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &MalformedPayloadError{Row: -1, Reason: fmt.Sprintf("expected an object, got %v", tok)}
	}

	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return &MalformedPayloadError{Row: i, Reason: "unreadable key", Err: err}
		}
		day, ok := tok.(string)
		if !ok {
			return &MalformedPayloadError{Row: i, Reason: fmt.Sprintf("unexpected token %v", tok)}
		}
		var times startEnd
		if err := dec.Decode(&times); err != nil {
			return &MalformedPayloadError{Row: i, Reason: fmt.Sprintf("%s: expected {start, end}", day), Err: err}
		}
		if times.Start == nil || times.End == nil {
			return &MalformedPayloadError{Row: i, Reason: fmt.Sprintf("%s: missing start or end", day)}
		}
		start, err := ParseClockString(day, *times.Start)
		if err != nil {
			return atRow(err, i)
		}
		end, err := ParseClockString(day, *times.End)
		if err != nil {
			return atRow(err, i)
		}
		if err := table.AddRow(day, start, end); err != nil {
			return &MalformedPayloadError{Row: i, Reason: "row does not fit schema", Err: err}
		}
	}

	if _, err := dec.Token(); err != nil {
		return &MalformedPayloadError{Row: -1, Reason: "unterminated object", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &MalformedPayloadError{Row: -1, Reason: "trailing data after object"}
	}
	return nil
}

func isJSONString(cell json.RawMessage) bool {
	trimmed := bytes.TrimSpace(cell)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func atRow(err error, row int) error {
	var malformed *MalformedPayloadError
	if errors.As(err, &malformed) {
		return &MalformedPayloadError{Row: row, Reason: malformed.Reason, Err: malformed.Err}
	}
	return err
}
