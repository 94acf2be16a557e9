package service

import (
	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
)

// ShowOptimalParams returns the best row of the current grid search for the
// given metric and direction without mutating any state. Ties keep the first
// row inserted.
func (s *RestorerService) ShowOptimalParams(metric, direction string) (restorer.GridRow, error) {
	m, err := restorer.ParseMetric(metric)
	if err != nil {
		return restorer.GridRow{}, err
	}
	d, err := restorer.ParseDirection(direction)
	if err != nil {
		return restorer.GridRow{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	search, err := s.currentLocked()
	if err != nil {
		return restorer.GridRow{}, err
	}
	return search.Best(m, d)
}

// SetOptimalParams writes the winning row's L and lambda back as the active
// hyperparameters, affecting subsequent restore calls that do not override
// them per call.
func (s *RestorerService) SetOptimalParams(metric, direction string) error {
	m, err := restorer.ParseMetric(metric)
	if err != nil {
		return err
	}
	row, err := s.ShowOptimalParams(metric, direction)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.hyperparams = restorer.Hyperparams{L: row.L, Lambda: row.Lambda}
	s.mu.Unlock()

	s.logger.Info("Applied optimal hyperparameters",
		zap.String("metric", string(m)),
		zap.String("direction", direction),
		zap.Int("l", row.L),
		zap.Float64("lambda", row.Lambda),
		zap.Float64("value", row.Value(m)))
	return nil
}
