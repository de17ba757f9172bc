package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("µU/mL insulin", 4); got != "µU/m..." {
		t.Errorf("multi-byte runes: got %s", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := map[string]string{
		"  apa   itu\tdiabetes \n": "apa itu diabetes",
		"":                         "",
		"   ":                      "",
		"satu":                     "satu",
	}
	for in, want := range tests {
		if got := CollapseSpace(in); got != want {
			t.Errorf("CollapseSpace(%q) = %q, want %q", in, got, want)
		}
	}
}
