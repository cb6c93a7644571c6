package importer

import (
	"fmt"
	"strings"
)

// ColumnIndex converts a spreadsheet column label to its 1-based index:
// "A"=1, "Z"=26, "AA"=27, "AZ"=52, "BA"=53. Labels are case-insensitive.
// An empty or non-alphabetic label is a template configuration error.
func ColumnIndex(label string) (int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, fmt.Errorf("empty column label")
	}
	index := 0
	for _, c := range label {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column label %q", label)
		}
		index = index*26 + int(c-'A') + 1
	}
	return index, nil
}

// ColumnLabel is the inverse of ColumnIndex: 1="A", 26="Z", 27="AA".
func ColumnLabel(index int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("invalid column index %d", index)
	}
	var b []byte
	for index > 0 {
		index--
		b = append([]byte{byte('A' + index%26)}, b...)
		index /= 26
	}
	return string(b), nil
}
