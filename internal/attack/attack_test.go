package attack

import (
	"reflect"
	"testing"

	"github.com/hyperifyio/statblock/record"
)

func TestScan_DetailedPattern(t *testing.T) {
	got := Scan("Melee jaws +12 (2d8+6 piercing)\nRanged flame ray +10 some rider text (4d6 fire)")
	want := []record.Attack{
		{Name: "jaws", Bonus: "+12", Damage: "2d8+6 piercing"},
		{Name: "flame ray", Bonus: "+10", Damage: "4d6 fire"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScan_RelaxedFallbackOnlyWhenNoDetailedMatch(t *testing.T) {
	got := Scan("Melee tail +9\nRanged spine −5")
	want := []record.Attack{
		{Name: "tail", Bonus: "+9"},
		{Name: "spine", Bonus: "-5"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// A single detailed match suppresses relaxed-only candidates entirely.
	got = Scan("Melee jaws +12 (2d8+6 piercing)\nRanged spine -5")
	if len(got) != 1 || got[0].Name != "jaws" {
		t.Fatalf("expected only the detailed match, got %v", got)
	}
}

func TestScan_NormalizesTypographicMinus(t *testing.T) {
	got := Scan("Melee fist −5 (1d4−1 bludgeoning)")
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %v", got)
	}
	if got[0].Bonus != "-5" {
		t.Fatalf("expected ASCII bonus -5, got %q", got[0].Bonus)
	}
	if got[0].Damage != "1d4-1 bludgeoning" {
		t.Fatalf("expected normalized damage, got %q", got[0].Damage)
	}
}

func TestMerge_KeepsHigherBonusForSameName(t *testing.T) {
	got := Scan("Melee claw +18 (2d8+9 piercing)\nMelee claw +12 (2d8+9 piercing)")
	want := []record.Attack{{Name: "claw", Bonus: "+18", Damage: "2d8+9 piercing"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Lower first, higher second: the higher bonus still wins.
	got = Scan("Melee claw +12 (2d8+9 piercing)\nMelee claw +18 (2d8+9 piercing)")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_CaseInsensitiveNamesAndTieKeepsFirst(t *testing.T) {
	got := Merge([]record.Attack{
		{Name: "Claw", Bonus: "+10", Damage: "first"},
		{Name: "claw", Bonus: "+10", Damage: "second"},
		{Name: "jaws", Bonus: "+8"},
	})
	want := []record.Attack{
		{Name: "Claw", Bonus: "+10", Damage: "first"},
		{Name: "jaws", Bonus: "+8"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_OutputOrderIsFirstEncounter(t *testing.T) {
	in := []record.Attack{
		{Name: "tail", Bonus: "+9"},
		{Name: "jaws", Bonus: "+12"},
		{Name: "tail", Bonus: "+15"},
	}
	got := Merge(in)
	if len(got) != 2 || got[0].Name != "tail" || got[1].Name != "jaws" {
		t.Fatalf("unexpected order: %v", got)
	}
	if got[0].Bonus != "+15" {
		t.Fatalf("expected upgraded bonus for tail, got %q", got[0].Bonus)
	}
}
