package service

import (
	"math"
	"strings"

	"restorer-go/internal/model/restorer"
)

// boundaryPenalty is the log10 cost added for each boundary rule a candidate
// word violates. It dwarfs any achievable probability difference over the
// search window, so rule-respecting splits always win when one exists, while
// the engine still terminates with some segmentation when none does.
const boundaryPenalty = -1000.0

// Segmenter restores word boundaries to unsegmented text by a windowed
// dynamic program over string positions, scoring candidate words with a
// probability estimator and pruning invalid boundaries with the alphabet
// classifier.
type Segmenter struct {
	estimator *Estimator
	alphabet  restorer.Alphabet
}

// NewSegmenter creates a segmentation engine over a trained estimator
func NewSegmenter(estimator *Estimator, alphabet restorer.Alphabet) *Segmenter {
	return &Segmenter{estimator: estimator, alphabet: alphabet}
}

// Restore returns text with spaces restored, using the given hyperparameters.
// The input must contain no boundary characters. An empty input yields an
// empty output.
func (s *Segmenter) Restore(text string, hp restorer.Hyperparams) (string, error) {
	if err := hp.Validate(); err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}
	if s.estimator.Model().CaseFold() {
		text = strings.ToLower(text)
	}
	words, _ := s.segment([]rune(text), hp)
	return strings.Join(words, " "), nil
}

// RestoreBatch restores each text independently; only the read-only trained
// model is shared between them.
func (s *Segmenter) RestoreBatch(texts []string, hp restorer.Hyperparams) ([]string, error) {
	restored := make([]string, len(texts))
	for i, text := range texts {
		out, err := s.Restore(text, hp)
		if err != nil {
			return nil, err
		}
		restored[i] = out
	}
	return restored, nil
}

// segment runs the dynamic program and returns the best word sequence and
// its cumulative log10 probability.
//
// best[i] is the highest cumulative log10 probability of any segmentation of
// the prefix ending at rune position i; back[i] records the word length that
// achieves it. Histories for the conditional estimates are read back through
// the backpointer chain, so the whole program runs in O(n*L) time and O(n)
// space.
func (s *Segmenter) segment(runes []rune, hp restorer.Hyperparams) ([]string, float64) {
	n := len(runes)
	best := make([]float64, n+1)
	back := make([]int, n+1)

	for i := 1; i <= n; i++ {
		best[i] = math.Inf(-1)
		maxLen := hp.L
		if maxLen > i {
			maxLen = i
		}
		for k := 1; k <= maxLen; k++ {
			start := i - k
			word := runes[start:i]
			history := s.wordsBefore(runes, back, start)
			score := best[start] + s.estimator.LogProb(string(word), history, hp.Lambda)
			if !s.alphabet.CanStartWord(word[0]) {
				score += boundaryPenalty
			}
			if !s.alphabet.CanEndWord(word[len(word)-1]) {
				score += boundaryPenalty
			}
			// Strict improvement keeps the shortest word on ties, so the
			// result is deterministic.
			if score > best[i] {
				best[i] = score
				back[i] = k
			}
		}
	}

	// Follow backpointers from the end, then reverse.
	words := make([]string, 0, n/2+1)
	for i := n; i > 0; i -= back[i] {
		words = append(words, string(runes[i-back[i]:i]))
	}
	for l, r := 0, len(words)-1; l < r; l, r = l+1, r-1 {
		words[l], words[r] = words[r], words[l]
	}
	return words, best[n]
}

// wordsBefore recovers up to maxOrder-1 words preceding rune position pos by
// walking the backpointer chain, oldest first. These form the history for
// the conditional probability of the next candidate word.
func (s *Segmenter) wordsBefore(runes []rune, back []int, pos int) []string {
	want := s.estimator.Model().MaxOrder() - 1
	if want <= 0 || pos == 0 {
		return nil
	}
	words := make([]string, 0, want)
	for i := pos; i > 0 && len(words) < want; i -= back[i] {
		words = append(words, string(runes[i-back[i]:i]))
	}
	for l, r := 0, len(words)-1; l < r; l, r = l+1, r-1 {
		words[l], words[r] = words[r], words[l]
	}
	return words
}
