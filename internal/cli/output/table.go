// Package output provides output formatting for mapkit-bench.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// TableFormatter renders run results and config listings as aligned text
// columns, the default terminal output of mapkit-bench.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format renders data as a table. A slice of structs becomes one row per
// element, a single struct becomes a FIELD/VALUE listing, and a map becomes
// key-sorted KEY/VALUE rows. Anything else falls back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	if t, ok := data.(*Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}
	if t, ok := data.(Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	table, err := toTable(data, f.Wide)
	if err != nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	return table.RenderWithOptions(w, f.NoHeaders)
}

func toTable(data any, wide bool) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceToTable(v, wide)
	case reflect.Map:
		return mapToTable(v)
	case reflect.Struct:
		return structToTable(v)
	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

// columns picks the visible fields of a row struct. The table tag controls
// visibility ("-" hides, "wide" shows only with -w); the column name comes
// from the yaml or json tag when one is set.
func columns(t reflect.Type, wide bool) (headers []string, indices []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("table")
		if tag == "-" || (strings.Contains(tag, "wide") && !wide) {
			continue
		}

		headers = append(headers, strings.ToUpper(columnName(field)))
		indices = append(indices, i)
	}

	return headers, indices
}

func columnName(field reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return toSnakeCase(field.Name)
}

func sliceToTable(v reflect.Value, wide bool) (*Table, error) {
	if v.Len() == 0 {
		return &Table{}, nil
	}

	first := v.Index(0)
	if first.Kind() == reflect.Ptr {
		first = first.Elem()
	}

	if first.Kind() != reflect.Struct {
		table := &Table{Headers: []string{"VALUE"}}
		for i := 0; i < v.Len(); i++ {
			table.AddRow(formatValue(v.Index(i)))
		}

		return table, nil
	}

	headers, indices := columns(first.Type(), wide)
	table := &Table{Headers: headers}

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		row := make([]string, 0, len(indices))
		for _, idx := range indices {
			row = append(row, formatValue(elem.Field(idx)))
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// mapToTable renders a map as key-sorted rows so repeated invocations
// produce identical output.
func mapToTable(v reflect.Value) (*Table, error) {
	table := &Table{Headers: []string{"KEY", "VALUE"}}

	keys := make([]string, 0, v.Len())
	byKey := make(map[string]string, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		k := formatValue(iter.Key())
		keys = append(keys, k)
		byKey[k] = formatValue(iter.Value())
	}

	sort.Strings(keys)

	for _, k := range keys {
		table.AddRow(k, byKey[k])
	}

	return table, nil
}

func structToTable(v reflect.Value) (*Table, error) {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}

	headers, indices := columns(v.Type(), true)
	for i, idx := range indices {
		table.AddRow(strings.ToLower(headers[i]), formatValue(v.Field(idx)))
	}

	return table, nil
}

// formatValue renders one cell. Durations, large counts, and the per-op
// counter maps of run results get readable renderings instead of raw Go
// values.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Type() {
	case reflect.TypeOf(time.Time{}):
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return "-"
		}

		return t.Format("2006-01-02 15:04")
	case reflect.TypeOf(time.Duration(0)):
		return v.Interface().(time.Duration).Round(10 * time.Microsecond).String()
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "-"
		}

		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return humanize.Comma(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return humanize.Comma(int64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}

		return "false"
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}

		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		return formatCounterMap(v)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// formatCounterMap renders a map inline as sorted k=v pairs, which is how
// the per-op counters of a run result read best inside a single cell.
func formatCounterMap(v reflect.Value) string {
	if v.Len() == 0 {
		return "-"
	}

	pairs := make([]string, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		pairs = append(pairs, fmt.Sprintf("%v=%v", iter.Key().Interface(), iter.Value().Interface()))
	}

	sort.Strings(pairs)

	return strings.Join(pairs, " ")
}

// toSnakeCase converts a Go field name to snake_case, keeping acronym runs
// together (RunID becomes run_id).
func toSnakeCase(s string) string {
	runes := []rune(s)

	var b strings.Builder

	for i, r := range runes {
		if i > 0 && isUpper(r) && (!isUpper(runes[i-1]) || (i+1 < len(runes) && isLower(runes[i+1]))) {
			b.WriteByte('_')
		}

		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}

	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return nil
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
