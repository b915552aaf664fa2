package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "empty", input: "", limit: 10, expected: ""},
		{name: "zero limit", input: "hello", limit: 0, expected: ""},
		{name: "under limit", input: "hello", limit: 10, expected: "hello"},
		{name: "exact limit", input: "hello", limit: 5, expected: "hello"},
		{name: "over limit", input: "hello world", limit: 5, expected: "hello..."},
		{name: "trims whitespace", input: "  hello  ", limit: 10, expected: "hello"},
		{name: "multibyte", input: "привет мир", limit: 6, expected: "привет..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateForLog(tc.input, tc.limit)
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestWithGenerationNilLogger(t *testing.T) {
	logger := WithGeneration(nil, "gemini", "gemini-2.5-flash")
	if logger == nil {
		t.Fatalf("expected a usable logger")
	}
	logger.Info("must not panic")
}

func TestWithGenerationSkipsEmptyFields(t *testing.T) {
	base := zap.NewNop()
	if got := WithGeneration(base, "  ", "\t"); got != base {
		t.Fatalf("expected the input logger to be returned unchanged")
	}
}

func TestNewEncodings(t *testing.T) {
	for _, json := range []bool{true, false} {
		logger, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error (json=%v): %v", json, err)
		}
		if logger == nil {
			t.Fatalf("expected a logger (json=%v)", json)
		}
	}
}

func TestTruncateForLogSuffix(t *testing.T) {
	got := TruncateForLog(strings.Repeat("a", 50), 10)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}
