package strings

import (
	"testing"
	"unicode/utf8"
)

func TestSingleLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: "Hello World!", maxLen: 60, expected: "Hello World!"},
		{name: "exact length unchanged", input: "hello", maxLen: 5, expected: "hello"},
		{name: "long string cut", input: "hello world this is a long string", maxLen: 15, expected: "hello world ..."},
		{name: "stack trace flattened", input: "panic: boom\n\tgoroutine 1\n\tmain.go:12", maxLen: 100, expected: "panic: boom goroutine 1 main.go:12"},
		{name: "tiny limit is raised", input: "abcdef", maxLen: 1, expected: "a..."},
		{name: "empty", input: "", maxLen: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SingleLine(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("SingleLine(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestSingleLine_CountsRunes(t *testing.T) {
	got := SingleLine("ÄÖÜäöüß", 5)

	if got != "ÄÖ..." {
		t.Errorf("got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("result is not valid UTF-8")
	}
}
