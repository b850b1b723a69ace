// Package cli renders command results in the formats the CLI supports.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// ParseFormat validates an --output flag value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSON, FormatTable, FormatYAML, FormatCSV:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, table, yaml, or csv)", value)
	}
}

// RenderList writes a list of resources. Table and CSV output show the
// given columns in order; JSON and YAML emit the full objects.
func RenderList(w io.Writer, format Format, columns []string, items any) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, items)
	case FormatYAML:
		return renderYAML(w, items)
	case FormatTable, FormatCSV:
		rows, err := toRows(items)
		if err != nil {
			return err
		}
		return renderTable(w, format, columns, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderObject writes a single resource. Table and CSV fall back to a
// two-column field/value layout.
func RenderObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, obj)
	case FormatYAML:
		return renderYAML(w, obj)
	case FormatTable, FormatCSV:
		fields, err := toRow(obj)
		if err != nil {
			return err
		}
		tw := newTableWriter(w)
		tw.AppendHeader(table.Row{"FIELD", "VALUE"})
		for _, key := range sortedKeys(fields) {
			tw.AppendRow(table.Row{key, cellValue(fields[key])})
		}
		render(tw, format)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	// Round-trip through JSON so yaml output honors the json tags.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(generic)
}

func renderTable(w io.Writer, format Format, columns []string, rows []map[string]any) error {
	tw := newTableWriter(w)

	header := make(table.Row, 0, len(columns))
	for _, col := range columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, cellValue(row[col]))
		}
		tw.AppendRow(cells)
	}

	render(tw, format)
	return nil
}

func newTableWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

func render(tw table.Writer, format Format) {
	if format == FormatCSV {
		tw.RenderCSV()
		return
	}
	tw.Render()
}

// toRows converts a slice of resources into generic rows keyed by their
// JSON field names.
func toRows(items any) ([]map[string]any, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("cannot render %T as a list: %w", items, err)
	}
	return rows, nil
}

// toRow converts a single resource into a generic field map.
func toRow(obj any) (map[string]any, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("cannot render %T as an object: %w", obj, err)
	}
	return row, nil
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case bool, float64:
		return fmt.Sprintf("%v", val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
