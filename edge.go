package ncprep

import (
	"strings"
)

// CommentMarker starts a line which every reader in ncprep ignores, and which
// the header check accepts as the first character of a header line.
const CommentMarker = '#'

// DefaultDelimiter is used whenever the caller does not supply one.
const DefaultDelimiter = " "

// Edge is one row of an edge list. Weight holds the raw token as read; the
// mapper replaces it with the compressed value. Line is the 1-based line
// number in the source file.
type Edge struct {
	Source    string
	Target    string
	Weight    string
	Timestamp string
	Line      int
}

// Column names for the fixed positional edge list layout.
const (
	ColSource    = "source"
	ColTarget    = "target"
	ColWeight    = "weight"
	ColTimestamp = "timestamp"
)

// Columns returns the positional column names a transform reads. A weighted
// edge list has a third weight column.
func Columns(weighted bool) []string {
	if weighted {
		return []string{ColSource, ColTarget, ColWeight}
	}
	return []string{ColSource, ColTarget}
}

// ParseWeighted turns a yes/no flag into a bool. Only yes, no, y and n are
// accepted, in any case.
func ParseWeighted(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return false, errorf(InvalidWeightedFlag, "parsing weighted flag", "", "%q is not one of yes/no/y/n", s)
}

// NormalizeDelimiter maps the spelled out names accepted on the command line
// (tab, space, whitespace, \t) to the delimiter itself. Anything else is
// returned unchanged.
func NormalizeDelimiter(d string) string {
	switch strings.ToLower(d) {
	case "tab", `\t`:
		return "\t"
	case "space", "whitespace":
		return " "
	}
	return d
}

// SplitFields splits a line on delim. A single space delimiter treats any run
// of whitespace as one separator. For other delimiters, leading spaces are
// trimmed from each field.
func SplitFields(line, delim string) []string {
	if delim == "" || delim == DefaultDelimiter {
		return strings.Fields(line)
	}
	fields := strings.Split(line, delim)
	for i, f := range fields {
		fields[i] = strings.TrimLeft(f, " ")
	}
	return fields
}
