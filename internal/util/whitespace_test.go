package util

import "testing"

func TestTrimSpace(t *testing.T) {
	if got := TrimLeftSpace(" \t KEY=1 "); got != "KEY=1 " {
		t.Fatalf("TrimLeftSpace = %q", got)
	}
	if got := TrimRightSpace("A=1\n\n \r\n"); got != "A=1" {
		t.Fatalf("TrimRightSpace = %q", got)
	}
}

func TestSplitLineEnding(t *testing.T) {
	tests := []struct {
		line string
		body string
		eol  string
	}{
		{"A=1\r", "A=1", "\r"},
		{"A=1", "A=1", ""},
		{"\r", "", "\r"},
		{"", "", ""},
	}
	for _, tc := range tests {
		body, eol := SplitLineEnding(tc.line)
		if body != tc.body || eol != tc.eol {
			t.Fatalf("SplitLineEnding(%q) = %q, %q", tc.line, body, eol)
		}
	}
}
