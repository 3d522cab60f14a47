package textutil

import (
	"reflect"
	"testing"
)

func TestNormalizeSigns_TypographicMinus(t *testing.T) {
	cases := map[string]string{
		"−5":         "-5",
		"–3":         "-3",
		"+12":        "+12",
		"jaws −1 hi": "jaws -1 hi",
	}
	for in, want := range cases {
		if got := NormalizeSigns(in); got != want {
			t.Fatalf("NormalizeSigns(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \t b\n c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
	if got := CollapseSpaces("a\u00a0\u00a0b"); got != "a b" {
		t.Fatalf("nbsp not collapsed: %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("Fiend, Evil; Large • Mutant,,")
	want := []string{"Fiend", "Evil", "Large", "Mutant"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	got := Dedupe([]string{"Evil", "Large", "Evil", "evil"})
	want := []string{"Evil", "Large", "evil"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
