package csv

import "strings"

// UTF8BOM is the byte-order mark Excel and the CSV export put in front of the
// first header cell.
const UTF8BOM = "\uFEFF"

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func StripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], UTF8BOM)
	return headers
}
