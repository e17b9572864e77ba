package util

import (
	"strings"
	"unicode"
)

func TrimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func TrimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// SplitLineEnding separates a trailing carriage return from a line that was
// split on '\n'.
func SplitLineEnding(line string) (string, string) {
	if strings.HasSuffix(line, "\r") {
		return line[:len(line)-1], "\r"
	}
	return line, ""
}
