package adapters

import "strings"

// Trac's CSV query output uses exactly RFC 4180 double-quote escaping and
// nothing more, so the parser is a small explicit state machine rather
// than encoding/csv with its dialect knobs.

func parseCSVLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, current.String())

	return values
}

// parseCSV maps the header row's column names onto each record's values.
// Short rows yield empty strings for the missing columns.
func parseCSV(text string) []map[string]string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	header := parseCSVLine(strings.TrimSuffix(lines[0], "\r"))
	var records []map[string]string

	for _, line := range lines[1:] {
		values := parseCSVLine(strings.TrimSuffix(line, "\r"))
		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(values) {
				record[name] = values[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}

	return records
}
