package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
)

// TrainOptions configure model training
type TrainOptions struct {
	// MaxOrder is the maximum n-gram order (>= 1).
	MaxOrder int
	// CaseFold applies uniform case folding to the training corpus and to
	// restoration input.
	CaseFold bool
	// UnknownFunction selects the unknown-word probability form, either
	// "exponential" (default) or "gaussian".
	UnknownFunction string
}

// RestorerService owns a trained space-restoration model, its active
// hyperparameters and its grid searches. The trained model is read-only
// shared state; the hyperparameters and the grid-search tables are guarded
// by the mutex.
type RestorerService struct {
	alphabet restorer.Alphabet
	logger   *zap.Logger

	mu          sync.RWMutex
	estimator   *Estimator
	segmenter   *Segmenter
	hyperparams restorer.Hyperparams
	searches    map[string]*restorer.GridSearch
	current     string
}

// NewRestorerService creates an untrained service over the given alphabet
func NewRestorerService(alphabet restorer.Alphabet, logger *zap.Logger) *RestorerService {
	return &RestorerService{
		alphabet:    alphabet,
		logger:      logger,
		hyperparams: restorer.DefaultHyperparams,
		searches:    make(map[string]*restorer.GridSearch),
	}
}

// Train builds the frequency model, the unknown-word model and the
// segmentation engine. It fails fast on malformed options and leaves the
// service untouched on error.
func (s *RestorerService) Train(documents []string, opts TrainOptions) error {
	model, err := Train(documents, opts.MaxOrder, opts.CaseFold)
	if err != nil {
		return err
	}
	unknown, err := NewUnknownWordModel(opts.UnknownFunction, model)
	if err != nil {
		return err
	}

	estimator := NewEstimator(model, unknown)

	s.mu.Lock()
	s.estimator = estimator
	s.segmenter = NewSegmenter(estimator, s.alphabet)
	s.mu.Unlock()

	stats := model.Stats()
	s.logger.Info("Training complete",
		zap.Int("max_order", stats.MaxOrder),
		zap.Int64("total_words", stats.TotalWords),
		zap.Int("distinct_words", stats.DistinctWords),
		zap.Int("ngrams", stats.NGramCount),
		zap.String("unknown_function", unknown.Name()))
	return nil
}

// Trained reports whether a model has been trained or loaded
func (s *RestorerService) Trained() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.segmenter != nil
}

// Hyperparams returns the active hyperparameters
func (s *RestorerService) Hyperparams() restorer.Hyperparams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hyperparams
}

// SetHyperparams replaces the active hyperparameters
func (s *RestorerService) SetHyperparams(hp restorer.Hyperparams) error {
	if err := hp.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.hyperparams = hp
	s.mu.Unlock()
	return nil
}

// Restore restores spaces to a single text using the active hyperparameters
func (s *RestorerService) Restore(text string) (string, error) {
	segmenter, hp, err := s.engine()
	if err != nil {
		return "", err
	}
	return segmenter.Restore(text, hp)
}

// RestoreWith restores spaces using a per-call hyperparameter override; the
// active hyperparameters are left unchanged.
func (s *RestorerService) RestoreWith(text string, hp restorer.Hyperparams) (string, error) {
	segmenter, _, err := s.engine()
	if err != nil {
		return "", err
	}
	return segmenter.Restore(text, hp)
}

// RestoreBatch restores spaces to each text independently
func (s *RestorerService) RestoreBatch(texts []string) ([]string, error) {
	segmenter, hp, err := s.engine()
	if err != nil {
		return nil, err
	}
	restored := make([]string, len(texts))
	for i, text := range texts {
		out, err := segmenter.Restore(text, hp)
		if err != nil {
			return nil, err
		}
		restored[i] = out
		s.logger.Debug("Restored document",
			zap.Int("index", i),
			zap.Int("input_chars", len(text)),
			zap.Int("words", countWords(out)))
	}
	return restored, nil
}

// Stats returns summary statistics about the trained model
func (s *RestorerService) Stats() (ModelStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.estimator == nil {
		return ModelStats{}, fmt.Errorf("%w: train or load a model first", restorer.ErrEmptyModel)
	}
	return s.estimator.Model().Stats(), nil
}

// engine snapshots the segmenter and active hyperparameters under the read
// lock so a concurrent SetOptimalParams cannot interleave with a restore.
func (s *RestorerService) engine() (*Segmenter, restorer.Hyperparams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.segmenter == nil {
		return nil, restorer.Hyperparams{}, fmt.Errorf("%w: train or load a model first", restorer.ErrEmptyModel)
	}
	return s.segmenter, s.hyperparams, nil
}

func countWords(segmented string) int {
	count := 0
	inWord := false
	for _, r := range segmented {
		if r == ' ' {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}
