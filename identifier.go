package sheetlite

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TableNameForSheet derives a destination table name from a sheet name in a
// multi-sheet workbook. Runes outside letters, digits, underscore, hyphen,
// and whitespace become underscores, whitespace becomes underscores, an empty
// result falls back to sheet_<n> with the 1-based sheet position, and a name
// that does not start with a letter gains a table_ prefix. The derivation is
// a fixed point: applying it to its own output changes nothing.
func TableNameForSheet(sheetName string, index int) string {
	name := strings.TrimSpace(sheetName)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	name = b.String()

	if name == "" {
		return fmt.Sprintf("sheet_%d", index+1)
	}
	if first, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(first) {
		return "table_" + name
	}
	return name
}

// ColumnIdentifiers derives identifiers for all header labels of a sheet, in
// order, resolving collisions with a numeric suffix: the first occurrence
// keeps the derived name, later ones get _2, _3, and so on.
func ColumnIdentifiers(labels []string) []string {
	names := make([]string, len(labels))
	taken := make(map[string]bool, len(labels))
	for i, label := range labels {
		name := uniqueName(columnIdentifier(label, i), taken)
		taken[name] = true
		names[i] = name
	}
	return names
}

// columnIdentifier derives a storable identifier from one header label.
// Labels made solely of letters, digits, underscores, and hyphens are kept
// verbatim; otherwise every rune outside that set becomes an underscore.
// index is the column's 0-based position, used when nothing remains.
func columnIdentifier(label string, index int) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Sprintf("col_%d", index)
	}
	if isPlainIdentifier(label) {
		return label
	}

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isPlainIdentifier reports whether s consists solely of letters, digits,
// underscores, and hyphens.
func isPlainIdentifier(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

// uniqueName returns name if it is not taken, otherwise name_2, name_3, and
// so on, bumping the suffix until a free identifier is found.
func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
