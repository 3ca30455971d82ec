package product

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractKeySpecs_PrefersAnalysis(t *testing.T) {
	analysis := &Analysis{KeySpecs: []KeySpec{{Feature: "Battery", Detail: "40 hours"}}}
	specs := ExtractKeySpecs(analysis, "Weight: 1.2kg")
	if len(specs) != 1 || specs[0].Feature != "Battery" {
		t.Fatalf("expected analysis specs to win: %v", specs)
	}
}

func TestExtractKeySpecs_FallsBackToDescription(t *testing.T) {
	analysis := &Analysis{KeySpecs: []KeySpec{{Feature: "", Detail: "orphan"}}}
	specs := ExtractKeySpecs(analysis, "Weight: 1.2kg")
	if len(specs) != 1 || specs[0].Feature != "Weight" || specs[0].Detail != "1.2kg" {
		t.Fatalf("expected description fallback: %v", specs)
	}
}

func TestSanitizeKeySpecs_DedupAndCaps(t *testing.T) {
	in := []KeySpec{
		{Feature: "Battery Life", Detail: "40 hours"},
		{Feature: "battery   life", Detail: "duplicate"},
		{Feature: "Display panel resolution refresh rate color depth brightness", Detail: "capped feature"},
		{Feature: "  ", Detail: "dropped"},
		{Feature: "Ports", Detail: "  "},
	}
	out := sanitizeKeySpecs(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 specs, got %v", out)
	}
	if out[0].Feature != "Battery Life" || out[0].Detail != "40 hours" {
		t.Fatalf("unexpected first spec: %+v", out[0])
	}
	if got := len(strings.Fields(out[1].Feature)); got != 6 {
		t.Fatalf("feature not capped at 6 words: %q", out[1].Feature)
	}
}

func TestSanitizeKeySpecs_ClipsLongDetail(t *testing.T) {
	long := strings.Repeat("a", 250)
	out := sanitizeKeySpecs([]KeySpec{{Feature: "Notes", Detail: long}})
	if len(out) != 1 {
		t.Fatalf("expected 1 spec, got %v", out)
	}
	if n := utf8.RuneCountInString(out[0].Detail); n != 200 {
		t.Fatalf("expected 200 runes, got %d", n)
	}
	if !strings.HasSuffix(out[0].Detail, "…") {
		t.Fatalf("clipped detail not ellipsized: %q", out[0].Detail)
	}
}

func TestSanitizeKeySpecs_CapsAtEight(t *testing.T) {
	var in []KeySpec
	for _, f := range []string{"A1", "B2", "C3", "D4", "E5", "F6", "G7", "H8", "I9", "J10"} {
		in = append(in, KeySpec{Feature: f, Detail: "v"})
	}
	if out := sanitizeKeySpecs(in); len(out) != 8 {
		t.Fatalf("expected 8 specs, got %d", len(out))
	}
}

func TestDeriveKeySpecs_ColonsAndDashes(t *testing.T) {
	desc := "Battery: 10 hours; Weight - 1.2kg\nDisplay: 14 inch"
	specs := deriveKeySpecs(desc)
	want := []KeySpec{
		{Feature: "Battery", Detail: "10 hours"},
		{Feature: "Weight", Detail: "1.2kg"},
		{Feature: "Display", Detail: "14 inch"},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d: %v", len(specs), len(want), specs)
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Fatalf("spec %d: got %+v, want %+v", i, specs[i], want[i])
		}
	}
}

func TestDeriveKeySpecs_CommaBeforeCapital(t *testing.T) {
	// a comma inside a number must not split, one before a capitalized
	// fragment must
	desc := "Capacity: 1,000 mAh, Charge time: 2 hours"
	specs := deriveKeySpecs(desc)
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %v", specs)
	}
	if specs[0].Detail != "1,000 mAh" {
		t.Fatalf("numeric comma split the segment: %+v", specs[0])
	}
	if specs[1].Feature != "Charge time" || specs[1].Detail != "2 hours" {
		t.Fatalf("unexpected second spec: %+v", specs[1])
	}
}

func TestDeriveKeySpecs_StripsBulletsAndSentences(t *testing.T) {
	desc := "• Connectivity: Bluetooth 5.3\nGreat for travel. Weight: 250g"
	specs := deriveKeySpecs(desc)
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %v", specs)
	}
	if specs[0].Feature != "Connectivity" {
		t.Fatalf("bullet marker not stripped: %+v", specs[0])
	}
	if specs[1].Feature != "Weight" {
		t.Fatalf("leading sentence not dropped from label: %+v", specs[1])
	}
}

func TestDeriveKeySpecs_NoColonNoSpec(t *testing.T) {
	if specs := deriveKeySpecs("Just a plain marketing sentence without structure"); len(specs) != 0 {
		t.Fatalf("expected no specs, got %v", specs)
	}
	if specs := deriveKeySpecs("   "); specs != nil {
		t.Fatalf("expected nil for blank input, got %v", specs)
	}
}

func TestSplitBullets(t *testing.T) {
	text := "• First point • Second point 3. Third one [•] 4"
	got := SplitBullets(text)
	want := []string{"First point", "Second point", "Third one"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("part %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
