package restorer

// Alphabet classifies letters that constrain where a word boundary may fall.
// Letters in the word-initial-only set may start a word but never end one;
// letters in the word-final-only set may end a word but never start one.
// The two sets are expected to be disjoint. Letters in neither set are
// unconstrained, which also covers any non-alphabet characters in the input.
type Alphabet struct {
	initialOnly map[rune]bool
	finalOnly   map[rune]bool
}

// NewAlphabet creates an alphabet from the two boundary-letter sets
func NewAlphabet(initialOnly, finalOnly []rune) Alphabet {
	a := Alphabet{
		initialOnly: make(map[rune]bool, len(initialOnly)),
		finalOnly:   make(map[rune]bool, len(finalOnly)),
	}
	for _, r := range initialOnly {
		a.initialOnly[r] = true
	}
	for _, r := range finalOnly {
		a.finalOnly[r] = true
	}
	return a
}

// CanStartWord reports whether r is allowed as the first letter of a word
func (a Alphabet) CanStartWord(r rune) bool {
	return !a.finalOnly[r]
}

// CanEndWord reports whether r is allowed as the last letter of a word
func (a Alphabet) CanEndWord(r rune) bool {
	return !a.initialOnly[r]
}

// InitialOnly returns the word-initial-only letters
func (a Alphabet) InitialOnly() []rune {
	letters := make([]rune, 0, len(a.initialOnly))
	for r := range a.initialOnly {
		letters = append(letters, r)
	}
	return letters
}

// FinalOnly returns the word-final-only letters
func (a Alphabet) FinalOnly() []rune {
	letters := make([]rune, 0, len(a.finalOnly))
	for r := range a.finalOnly {
		letters = append(letters, r)
	}
	return letters
}
