// Package model defines the data structures shared by the place-file
// converter: the parsed document tree, typed property values, the element map
// and the reports produced by parse and rebuild runs.
package model

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Path represents a file system path.
type Path string

// Slash returns the path with forward slashes, the form stored in the element map.
func (p Path) Slash() Path {
	return Path(filepath.ToSlash(string(p)))
}

// Native converts a slash-separated path to the host separator.
func (p Path) Native() Path {
	return Path(filepath.FromSlash(string(p)))
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\r", "\n")
}

// IsXMLText reports whether s is valid UTF-8 made only of characters an XML
// document can carry.
func IsXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		if !IsXMLChar(r) {
			return false
		}
	}

	return true
}

// IsXMLChar reports whether r is in the XML 1.0 Char production.
func IsXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
