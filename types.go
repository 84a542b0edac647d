package sheetlite

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// columnType represents the inferred storage type of a column.
type columnType int

const (
	columnTypeText columnType = iota
	columnTypeInteger
	columnTypeReal
	columnTypeBoolean
	columnTypeTimestamp
)

// String returns a human-readable name for the column type.
func (ct columnType) String() string {
	switch ct {
	case columnTypeInteger:
		return "integer"
	case columnTypeReal:
		return "real"
	case columnTypeBoolean:
		return "boolean"
	case columnTypeTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// sqlType returns the SQLite column type used in CREATE TABLE statements.
// Booleans are stored as INTEGER 0/1 and timestamps keep their source form
// as TEXT.
func (ct columnType) sqlType() string {
	switch ct {
	case columnTypeInteger, columnTypeBoolean:
		return "INTEGER"
	case columnTypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// columnInfo pairs a derived column identifier with its inferred storage type.
type columnInfo struct {
	Name string
	Type columnType
}

// inferColumnsInfo infers a storage type for every column by scanning the
// data rows. Rows are expected to be padded to the width of names.
func inferColumnsInfo(names []string, rows [][]string) []columnInfo {
	if len(names) == 0 {
		return nil
	}

	columns := make([]columnInfo, len(names))
	for i, name := range names {
		columns[i] = columnInfo{Name: name, Type: columnTypeText}
	}
	if len(rows) == 0 {
		return columns
	}

	for i := range columns {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		columns[i].Type = inferColumnType(values)
	}
	return columns
}

// inferColumnType decides the storage type for one column by scanning all of
// its values. Blank values are skipped. Any textual value makes the whole
// column TEXT, as does a boolean mixed with any other kind. Otherwise the
// most permissive kind seen wins: timestamp over real over integer.
func inferColumnType(values []string) columnType {
	var hasBool, hasTimestamp, hasReal, hasInteger bool

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch classifyValue(value) {
		case columnTypeBoolean:
			hasBool = true
		case columnTypeTimestamp:
			hasTimestamp = true
		case columnTypeReal:
			hasReal = true
		case columnTypeInteger:
			hasInteger = true
		default:
			return columnTypeText
		}
	}

	switch {
	case hasBool && (hasTimestamp || hasReal || hasInteger):
		return columnTypeText
	case hasTimestamp:
		return columnTypeTimestamp
	case hasReal:
		return columnTypeReal
	case hasInteger:
		return columnTypeInteger
	case hasBool:
		return columnTypeBoolean
	default:
		return columnTypeText
	}
}

// classifyValue determines the kind of a single non-empty, trimmed value.
func classifyValue(value string) columnType {
	switch {
	case isBool(value):
		return columnTypeBoolean
	case isDatetime(value):
		return columnTypeTimestamp
	case isInteger(value):
		return columnTypeInteger
	case isFloat(value):
		return columnTypeReal
	default:
		return columnTypeText
	}
}

// isBool reports whether a value is a boolean literal as spreadsheet readers
// render boolean cells (TRUE/FALSE in any casing).
func isBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false":
		return true
	}
	return false
}

// isInteger reports whether a value parses as a signed integer.
func isInteger(value string) bool {
	if value == "" {
		return false
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isFloat reports whether a value parses as a floating point number.
func isFloat(value string) bool {
	if value == "" {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// datetimePatterns pairs a cheap regular expression pre-filter with the
// time.Parse layouts it admits. A value is a datetime only when a pattern
// matches and one of its layouts parses.
var datetimePatterns = []struct {
	regex   *regexp.Regexp
	formats []string
}{
	{
		regex:   regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`),
		formats: []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"},
	},
	{
		regex:   regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`),
		formats: []string{"2006-01-02 15:04:05"},
	},
	{
		regex:   regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		formats: []string{"2006-01-02"},
	},
	{
		regex:   regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		formats: []string{"1/2/2006", "01/02/2006"},
	},
	{
		regex:   regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		formats: []string{"2.1.2006", "02.01.2006"},
	},
	{
		regex:   regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`),
		formats: []string{"15:04:05", "15:04"},
	},
}

// Datetime values shorter or longer than any supported layout are rejected
// before pattern matching.
const (
	minDatetimeLen = 4
	maxDatetimeLen = 35
)

// isDatetime reports whether a value looks like a date, time, or timestamp in
// one of the supported layouts.
func isDatetime(value string) bool {
	if len(value) < minDatetimeLen || len(value) > maxDatetimeLen {
		return false
	}

	// Quick scan: every supported layout is digits plus separators.
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' || r == '/' || r == ':' || r == '.' || r == ' ' || r == 'T' || r == 'Z' || r == '+':
		default:
			return false
		}
	}

	for _, pattern := range datetimePatterns {
		if !pattern.regex.MatchString(value) {
			continue
		}
		for _, format := range pattern.formats {
			if _, err := time.Parse(format, value); err == nil {
				return true
			}
		}
	}
	return false
}

// bindValue converts a raw cell value into the value bound for its column's
// inferred type. Empty cells become NULL regardless of type; values that no
// longer parse fall back to their raw text.
func bindValue(ct columnType, raw string) any {
	if raw == "" {
		return nil
	}

	trimmed := strings.TrimSpace(raw)
	switch ct {
	case columnTypeBoolean:
		if strings.EqualFold(trimmed, "true") {
			return int64(1)
		}
		if strings.EqualFold(trimmed, "false") {
			return int64(0)
		}
	case columnTypeInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case columnTypeReal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return raw
}
