// Package contents parses Debian Contents indexes and counts files per package
package contents

import (
	"strings"
)

// Record is the result of classifying single line of Contents index:
// either *Entry or *Malformed
type Record interface {
	record()
}

// Entry is well-formed line: file path and packages providing it
type Entry struct {
	// Path may contain whitespace, collapsed to single spaces
	Path     string
	Packages []string
}

// Malformed is a line without separator between path and package list
type Malformed struct {
	Line string
}

func (*Entry) record()     {}
func (*Malformed) record() {}

// Classify splits line into path and package list
//
// Paths can contain whitespace, so only the last whitespace run separates
// path from comma-separated list of packages. Line without any whitespace
// (after trimming) is malformed.
func Classify(line string) Record {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return &Malformed{Line: line}
	}

	last := len(fields) - 1

	return &Entry{
		Path:     strings.Join(fields[:last], " "),
		Packages: splitPackages(fields[last]),
	}
}

func splitPackages(field string) []string {
	parts := strings.Split(field, ",")
	result := parts[:0]

	for _, name := range parts {
		if name != "" {
			result = append(result, name)
		}
	}

	return result
}
