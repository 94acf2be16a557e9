package tamil

import (
	"testing"
	"unicode/utf8"
)

func TestMapUnmap_Roundtrip(t *testing.T) {
	inputs := []string{
		"",
		"வணக்கம்",
		"தமிழ் ஒரு மொழி",
		"க்கா கீழ்",
		"அஆஇஈஉஊஎஏஐஒஓஔ",
		"ஃ",
	}
	for _, input := range inputs {
		if got := Unmap(Map(input)); got != input {
			t.Errorf("Roundtrip failed for %q: got %q", input, got)
		}
	}
}

func TestMap_OneRunePerLetter(t *testing.T) {
	// வணக்கம் is the letters வ ண க் க ம், i.e. 5 letters over 7 codepoints.
	mapped := Map("வணக்கம்")
	if got := utf8.RuneCountInString(mapped); got != 5 {
		t.Errorf("Expected 5 stand-in runes, got %d (%q)", got, mapped)
	}
	for _, r := range mapped {
		if r < mapOffset {
			t.Errorf("Rune %q was not mapped to a stand-in", r)
		}
	}
}

func TestMap_PassesThroughNonTamil(t *testing.T) {
	if got := Unmap(Map("abc 123!")); got != "abc 123!" {
		t.Errorf("Non-Tamil text should pass through unchanged, got %q", got)
	}
	mapped := Map("தமிழ் abc")
	if got := Unmap(mapped); got != "தமிழ் abc" {
		t.Errorf("Mixed text roundtrip failed: %q", got)
	}
}

func TestMap_UnifiesAlternativeEncodings(t *testing.T) {
	// கொ written with the single sign U+0BCA and as ெ + ா must map to the
	// same stand-in rune.
	canonical := Map("கொ")
	decomposed := Map("கொ")
	if canonical != decomposed {
		t.Errorf("Alternative encodings map differently: %q vs %q", canonical, decomposed)
	}
}

func TestBoundaryLetterSets(t *testing.T) {
	uyirRunes := MappedUyir()
	meiRunes := MappedMei()

	if len(uyirRunes) != 12 {
		t.Errorf("Expected 12 uyir letters, got %d", len(uyirRunes))
	}
	if len(meiRunes) != 18 {
		t.Errorf("Expected 18 mei letters, got %d", len(meiRunes))
	}

	seen := make(map[rune]bool)
	for _, r := range uyirRunes {
		seen[r] = true
	}
	for _, r := range meiRunes {
		if seen[r] {
			t.Errorf("Rune %q is in both boundary sets", r)
		}
	}
}

func TestMappedSets_AgreeWithMap(t *testing.T) {
	// The stand-in for a mei letter like க் must be the one Map produces.
	mapped := []rune(Map("க்"))
	if len(mapped) != 1 {
		t.Fatalf("Expected a single stand-in for க், got %q", string(mapped))
	}
	found := false
	for _, r := range MappedMei() {
		if r == mapped[0] {
			found = true
		}
	}
	if !found {
		t.Error("Map and MappedMei disagree about the stand-in for க்")
	}
}
