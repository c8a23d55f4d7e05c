// Package export encodes fetched records into CSV, JSON, XML and XLSX.
// These are pure format writers over in-memory data: no network calls, no
// knowledge of resources or pagination.
package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Document is a schemaless record, matching the shape the query core works
// with.
type Document = map[string]any

// Fields resolves the column set for tabular formats: the explicit list when
// given, otherwise the sorted union of keys across all records.
func Fields(docs []Document, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	seen := map[string]struct{}{}
	for _, doc := range docs {
		for k := range doc {
			seen[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// CSV writes the records as comma-separated values with a header row.
// Missing fields render as empty cells; compound values are JSON-encoded.
func CSV(w io.Writer, docs []Document, fields []string) error {
	cols := Fields(docs, fields)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("export: failed to write CSV header: %w", err)
	}
	row := make([]string, len(cols))
	for _, doc := range docs {
		for i, col := range cols {
			row[i] = formatValue(doc[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes the records as an indented JSON array.
func JSON(w io.Writer, docs []Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("export: failed to write JSON: %w", err)
	}
	return nil
}

// XML writes the records as `<root><record>...</record>...</root>` with one
// element per field. Field names are used as element names verbatim.
func XML(w io.Writer, docs []Document, root, record string, fields []string) error {
	if root == "" {
		root = "records"
	}
	if record == "" {
		record = "record"
	}
	cols := Fields(docs, fields)

	if _, err := fmt.Fprintf(w, "<%s>", root); err != nil {
		return fmt.Errorf("export: failed to write XML: %w", err)
	}
	for _, doc := range docs {
		if _, err := fmt.Fprintf(w, "<%s>", record); err != nil {
			return fmt.Errorf("export: failed to write XML: %w", err)
		}
		for _, col := range cols {
			value, ok := doc[col]
			if !ok {
				continue
			}
			var sb strings.Builder
			if err := xml.EscapeText(&sb, []byte(formatValue(value))); err != nil {
				return fmt.Errorf("export: failed to escape XML value: %w", err)
			}
			if _, err := fmt.Fprintf(w, "<%s>%s</%s>", col, sb.String(), col); err != nil {
				return fmt.Errorf("export: failed to write XML: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "</%s>", record); err != nil {
			return fmt.Errorf("export: failed to write XML: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "</%s>", root); err != nil {
		return fmt.Errorf("export: failed to write XML: %w", err)
	}
	return nil
}

// XLSX writes the records as a single-sheet workbook with a header row.
func XLSX(w io.Writer, docs []Document, fields []string, sheet string) error {
	if sheet == "" {
		sheet = "Sheet1"
	}
	cols := Fields(docs, fields)

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("export: failed to name sheet: %w", err)
		}
	}

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export: failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("export: failed to write header cell: %w", err)
		}
	}
	for r, doc := range docs {
		for i, col := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("export: failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(doc[col])); err != nil {
				return fmt.Errorf("export: failed to write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: failed to write workbook: %w", err)
	}
	return nil
}

// formatValue renders a value as text. Maps and slices are JSON-encoded so
// nested structure survives flat formats.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// cellValue keeps native scalars for spreadsheet cells and falls back to the
// text rendering for everything else.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case bool, int, int64, float64, string:
		return v
	default:
		return formatValue(v)
	}
}
