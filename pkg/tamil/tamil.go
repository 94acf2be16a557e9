// Package tamil converts Tamil text to and from a working alphabet of
// single-rune stand-ins.
//
// Tamil letters are frequently multi-codepoint: a consonant-vowel compound
// such as கா is a base consonant followed by a vowel sign, and a pure
// consonant such as க் carries a pulli mark. The statistical restorer wants
// one rune per letter, so every letter of the Tamil alphabet is mapped
// bijectively to a stand-in rune starting at offset 40000, and mapped back
// after restoration. Characters outside the Tamil alphabet pass through
// unchanged in both directions, so Unmap(Map(s)) == Unify(s) for any input,
// and round-trips exactly for text already in canonical form.
//
// Some compounds additionally have more than one valid codepoint sequence
// (for example கொ may be written with U+0BCA or as U+0BC6 U+0BBE); Map
// canonicalizes these before substituting, so the two spellings map to the
// same stand-in.
package tamil

import "strings"

const mapOffset = 40000

// The Tamil letter inventory, built from its orthographic parts.
var (
	uyir = []string{
		"அ", "ஆ", "இ", "ஈ", "உ", "ஊ",
		"எ", "ஏ", "ஐ", "ஒ", "ஓ", "ஔ",
	}
	consonants = []string{
		"க", "ங", "ச", "ஞ", "ட", "ண",
		"த", "ந", "ப", "ம", "ய", "ர",
		"ல", "வ", "ழ", "ள", "ற", "ன",
	}
	vowelSigns = []string{
		"ா", "ி", "ீ", "ு", "ூ",
		"ெ", "ே", "ை", "ொ", "ோ", "ௌ",
	}
)

const (
	pulli   = "்"
	ayudham = "ஃ"
)

var (
	mapping = make(map[string]rune)
	inverse = make(map[rune]string)

	mappedUyir []rune
	mappedMei  []rune
)

func init() {
	// Multi-codepoint letters first, then single-codepoint ones, so the
	// longest-match scan in Map never splits a compound. Within each group
	// the inventory order is fixed, which keeps stand-in assignment stable
	// across runs and snapshots.
	var letters []string
	for _, c := range consonants {
		letters = append(letters, c+pulli)
		for _, sign := range vowelSigns {
			letters = append(letters, c+sign)
		}
	}
	letters = append(letters, uyir...)
	letters = append(letters, ayudham)
	letters = append(letters, consonants...)

	for i, letter := range letters {
		standIn := rune(mapOffset + i)
		mapping[letter] = standIn
		inverse[standIn] = letter
	}
	for _, v := range uyir {
		mappedUyir = append(mappedUyir, mapping[v])
	}
	for _, c := range consonants {
		mappedMei = append(mappedMei, mapping[c+pulli])
	}
}

// unifier rewrites alternative codepoint sequences for compound letters into
// the canonical forms used by the letter inventory.
var unifier = strings.NewReplacer(
	"ொ", "ொ", // ொ written as ெ + ா
	"ோ", "ோ", // ோ written as ே + ா
	"ஔ", "ஔ", // ஔ written as ஒ + ௗ
	"ௌ", "ௌ", // ௌ written as ெ + ௗ
	"ௌ்", "ெள்", // ௌ் is really ெ + ள்
)

// Unify canonicalizes alternative encodings of Tamil compound letters
func Unify(text string) string {
	return unifier.Replace(text)
}

// Map converts Tamil text to the single-rune working alphabet
func Map(text string) string {
	runes := []rune(Unify(text))
	var b strings.Builder
	b.Grow(len(runes))
	for i := 0; i < len(runes); {
		if i+1 < len(runes) {
			if standIn, ok := mapping[string(runes[i:i+2])]; ok {
				b.WriteRune(standIn)
				i += 2
				continue
			}
		}
		if standIn, ok := mapping[string(runes[i])]; ok {
			b.WriteRune(standIn)
		} else {
			b.WriteRune(runes[i])
		}
		i++
	}
	return b.String()
}

// Unmap converts text in the working alphabet back to Tamil script
func Unmap(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if letter, ok := inverse[r]; ok {
			b.WriteString(letter)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MappedUyir returns the stand-in runes for the uyir (independent vowel)
// letters. In Tamil orthography these occur only word-initially, so they
// form the word-initial-only set of the boundary classifier.
func MappedUyir() []rune {
	return append([]rune(nil), mappedUyir...)
}

// MappedMei returns the stand-in runes for the mei (pure consonant) letters,
// which never begin a Tamil word: the word-final-only set of the boundary
// classifier.
func MappedMei() []rune {
	return append([]rune(nil), mappedMei...)
}
