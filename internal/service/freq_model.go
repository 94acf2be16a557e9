package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"restorer-go/internal/model/restorer"
)

// FrequencyModel holds the n-gram statistics built from a training corpus.
// It is immutable after Train returns: every restoration call reads it
// without synchronization.
type FrequencyModel struct {
	maxOrder int
	caseFold bool

	// counts[k] maps a (k+1)-gram, joined with single spaces, to its
	// occurrence count. N-grams never cross document boundaries.
	counts []map[string]int64

	totalWords    int64
	distinctWords int

	// Word-length statistics (in runes, per occurrence), used by the
	// unknown-word models.
	lengthMean     float64
	lengthVariance float64

	// Characters observed in the training corpus, for the degenerate
	// uniform fallback when the corpus is empty or a model has no counts.
	observedChars map[rune]bool
}

// Train builds a frequency model from word-segmented documents. Each document
// is a string of space-delimited words over the working alphabet. An empty
// corpus yields a degenerate model; restoration then falls back to a uniform
// per-character estimate.
func Train(documents []string, maxOrder int, caseFold bool) (*FrequencyModel, error) {
	if maxOrder < 1 {
		return nil, fmt.Errorf("%w: max n-gram order must be at least 1, got %d", restorer.ErrConfiguration, maxOrder)
	}

	m := &FrequencyModel{
		maxOrder:      maxOrder,
		caseFold:      caseFold,
		counts:        make([]map[string]int64, maxOrder),
		observedChars: make(map[rune]bool),
	}
	for k := range m.counts {
		m.counts[k] = make(map[string]int64)
	}

	var lengthSum, lengthSqSum float64
	for _, doc := range documents {
		if caseFold {
			doc = strings.ToLower(doc)
		}
		words := strings.Fields(doc)
		for _, word := range words {
			m.totalWords++
			length := float64(utf8.RuneCountInString(word))
			lengthSum += length
			lengthSqSum += length * length
			for _, r := range word {
				m.observedChars[r] = true
			}
		}
		for n := 1; n <= maxOrder; n++ {
			for i := 0; i+n <= len(words); i++ {
				m.counts[n-1][restorer.NGram(words[i:i+n]).String()]++
			}
		}
	}

	m.distinctWords = len(m.counts[0])
	if m.totalWords > 0 {
		m.lengthMean = lengthSum / float64(m.totalWords)
		m.lengthVariance = lengthSqSum/float64(m.totalWords) - m.lengthMean*m.lengthMean
	}
	return m, nil
}

// Count returns the occurrence count of an n-gram, or zero if it was never
// seen or its order exceeds the model's maximum.
func (m *FrequencyModel) Count(ng restorer.NGram) int64 {
	if len(ng) == 0 || len(ng) > m.maxOrder {
		return 0
	}
	return m.counts[len(ng)-1][ng.String()]
}

// WordCount returns the unigram count of a single word
func (m *FrequencyModel) WordCount(word string) int64 {
	return m.counts[0][word]
}

// MaxOrder returns the maximum n-gram order
func (m *FrequencyModel) MaxOrder() int { return m.maxOrder }

// CaseFold reports whether training folded case
func (m *FrequencyModel) CaseFold() bool { return m.caseFold }

// TotalWords returns the total number of word occurrences in the corpus
func (m *FrequencyModel) TotalWords() int64 { return m.totalWords }

// DistinctWords returns the number of distinct training words
func (m *FrequencyModel) DistinctWords() int { return m.distinctWords }

// LengthMean returns the mean word length in runes
func (m *FrequencyModel) LengthMean() float64 { return m.lengthMean }

// LengthVariance returns the variance of word length in runes
func (m *FrequencyModel) LengthVariance() float64 { return m.lengthVariance }

// AlphabetSize returns the number of distinct characters observed in training
func (m *FrequencyModel) AlphabetSize() int { return len(m.observedChars) }

// Stats returns summary statistics about the model
func (m *FrequencyModel) Stats() ModelStats {
	ngramCount := 0
	for _, table := range m.counts {
		ngramCount += len(table)
	}
	return ModelStats{
		MaxOrder:       m.maxOrder,
		CaseFold:       m.caseFold,
		TotalWords:     m.totalWords,
		DistinctWords:  m.distinctWords,
		NGramCount:     ngramCount,
		LengthMean:     m.lengthMean,
		LengthVariance: m.lengthVariance,
	}
}

// ModelStats contains summary statistics about a frequency model
type ModelStats struct {
	MaxOrder       int     `json:"max_order"`
	CaseFold       bool    `json:"case_fold"`
	TotalWords     int64   `json:"total_words"`
	DistinctWords  int     `json:"distinct_words"`
	NGramCount     int     `json:"ngram_count"`
	LengthMean     float64 `json:"length_mean"`
	LengthVariance float64 `json:"length_variance"`
}
