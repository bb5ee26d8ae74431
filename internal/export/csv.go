// Package export renders queried collections as CSV text for file
// download.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Render produces CSV text with a header row. Every cell is quoted
// and embedded quotes are doubled, so output parses with any standard
// CSV reader.
func Render(headers []string, rows [][]interface{}) string {
	var b strings.Builder

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		writeRow(cells)
	}

	return b.String()
}

// formatCell flattens a field value to text. Nil renders as the empty
// string; object-valued fields render as their JSON form.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case int:
		return strconv.Itoa(val)
	case *int:
		if val == nil {
			return ""
		}
		return strconv.Itoa(*val)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case *uint:
		if val == nil {
			return ""
		}
		return strconv.FormatUint(uint64(*val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(time.RFC3339)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Filename builds the attachment name for an export of the given
// entity type, stamped with the current date.
func Filename(exportType string, now time.Time) string {
	return exportType + "-export-" + now.Format("2006-01-02") + ".csv"
}
