package service

import (
	"math"
	"unicode/utf8"

	"restorer-go/internal/model/restorer"
)

// Estimator converts raw n-gram counts into smoothed log10 probabilities.
// All arithmetic stays in log space; nothing is exponentiated mid-chain, so
// the ordering of candidate segmentations is never disturbed by underflow.
type Estimator struct {
	model   *FrequencyModel
	unknown UnknownWordModel
}

// NewEstimator pairs a trained frequency model with an unknown-word model
func NewEstimator(model *FrequencyModel, unknown UnknownWordModel) *Estimator {
	return &Estimator{model: model, unknown: unknown}
}

// LogProb returns the log10 probability of word following history, under
// smoothing weight lambda. The estimate backs off from the highest n-gram
// order whose preceding context was observed down to the unigram estimate,
// and finally to the unknown-word model. It is deterministic: the same
// (word, history, lambda) always yields the same value.
func (e *Estimator) LogProb(word string, history []string, lambda float64) float64 {
	m := e.model

	// Degenerate model: uniform probability per character over the observed
	// alphabet (or a binary alphabet if nothing at all was observed).
	if m.TotalWords() == 0 {
		size := m.AlphabetSize()
		if size < 2 {
			size = 2
		}
		return -float64(utf8.RuneCountInString(word)) * math.Log10(float64(size))
	}

	// Back-off chain over orders maxOrder..2.
	maxCtx := m.MaxOrder() - 1
	if len(history) < maxCtx {
		maxCtx = len(history)
	}
	for ctxLen := maxCtx; ctxLen >= 1; ctxLen-- {
		context := restorer.NGram(history[len(history)-ctxLen:])
		contextCount := m.Count(context)
		if contextCount == 0 {
			continue
		}
		full := append(append(restorer.NGram{}, context...), word)
		if c := m.Count(full); c > 0 {
			return math.Log10(float64(c) / float64(contextCount))
		}
	}

	// Unigram estimate.
	if c := m.WordCount(word); c > 0 {
		return math.Log10(float64(c) / float64(m.TotalWords()))
	}
	return e.unknown.LogProb(utf8.RuneCountInString(word), lambda)
}

// Unknown returns the unknown-word model in use
func (e *Estimator) Unknown() UnknownWordModel { return e.unknown }

// Model returns the underlying frequency model
func (e *Estimator) Model() *FrequencyModel { return e.model }
