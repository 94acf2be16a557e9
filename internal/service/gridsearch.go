package service

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
	"restorer-go/internal/parallel"
)

// GridSearchOptions tune a grid search run
type GridSearchOptions struct {
	// Beta weights recall against precision in the F-score. Zero means the
	// standard beta of 1.
	Beta float64
	// Parallel controls fan-out across hyperparameter combinations. The
	// zero value means parallel.DefaultConfig.
	Parallel *parallel.Config
}

// AddGridSearch evaluates the Cartesian product of L and lambda values over
// parallel reference/input document pairs and stores the result table under
// name, making it the current search for optimizer queries.
//
// Rows appear in nested iteration order, L outer and lambda inner.
// Combinations are evaluated concurrently but each writes its row by index,
// so the observable order is always the deterministic one.
func (s *RestorerService) AddGridSearch(name string, lValues []int, lambdaValues []float64, refDocs, inputDocs []string) (*restorer.GridSearch, error) {
	return s.AddGridSearchWithOptions(name, lValues, lambdaValues, refDocs, inputDocs, GridSearchOptions{})
}

// AddGridSearchWithOptions is AddGridSearch with explicit options
func (s *RestorerService) AddGridSearchWithOptions(name string, lValues []int, lambdaValues []float64, refDocs, inputDocs []string, opts GridSearchOptions) (*restorer.GridSearch, error) {
	if len(refDocs) != len(inputDocs) {
		return nil, fmt.Errorf("%w: %d reference documents but %d input documents",
			restorer.ErrShapeMismatch, len(refDocs), len(inputDocs))
	}
	if len(lValues) == 0 || len(lambdaValues) == 0 {
		return nil, fmt.Errorf("%w: grid search needs at least one L and one lambda value", restorer.ErrConfiguration)
	}
	for _, l := range lValues {
		if l <= 0 {
			return nil, fmt.Errorf("%w: L must be positive, got %d", restorer.ErrConfiguration, l)
		}
	}
	for _, lambda := range lambdaValues {
		if lambda <= 0 {
			return nil, fmt.Errorf("%w: lambda must be positive, got %g", restorer.ErrConfiguration, lambda)
		}
	}

	s.mu.RLock()
	segmenter := s.segmenter
	s.mu.RUnlock()
	if segmenter == nil {
		return nil, fmt.Errorf("%w: train or load a model first", restorer.ErrEmptyModel)
	}

	beta := opts.Beta
	if beta == 0 {
		beta = 1
	}
	cfg := parallel.DefaultConfig()
	if opts.Parallel != nil {
		cfg = *opts.Parallel
	}

	combos := make([]restorer.Hyperparams, 0, len(lValues)*len(lambdaValues))
	for _, l := range lValues {
		for _, lambda := range lambdaValues {
			combos = append(combos, restorer.Hyperparams{L: l, Lambda: lambda})
		}
	}

	search := &restorer.GridSearch{
		Name: name,
		ID:   uuid.NewString(),
		Beta: beta,
		Rows: make([]restorer.GridRow, len(combos)),
	}
	errs := make([]error, len(combos))

	s.logger.Info("Starting grid search",
		zap.String("name", name),
		zap.String("run_id", search.ID),
		zap.Int("combinations", len(combos)),
		zap.Int("documents", len(refDocs)))

	parallel.For(len(combos), func(i int) {
		hp := combos[i]
		var pooled boundaryCounts
		for doc := range inputDocs {
			predicted, err := segmenter.Restore(inputDocs[doc], hp)
			if err != nil {
				errs[i] = fmt.Errorf("combination (L=%d, lambda=%g), document %d: %w", hp.L, hp.Lambda, doc, err)
				return
			}
			pooled.add(scoreBoundaries(refDocs[doc], predicted))
		}
		search.Rows[i] = restorer.GridRow{
			L:         hp.L,
			Lambda:    hp.Lambda,
			Precision: pooled.precision(),
			Recall:    pooled.recall(),
			FScore:    pooled.fScore(beta),
		}
	}, cfg)

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("grid search %q: %w", name, err)
		}
	}

	s.mu.Lock()
	s.searches[name] = search
	s.current = name
	s.mu.Unlock()

	s.logger.Info("Grid search complete",
		zap.String("name", name),
		zap.String("run_id", search.ID),
		zap.Int("rows", len(search.Rows)))
	return search, nil
}

// LoadGridSearch makes a previously completed named search the current one
func (s *RestorerService) LoadGridSearch(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.searches[name]; !ok {
		return fmt.Errorf("%w: no grid search named %q", restorer.ErrNoGridSearchSelected, name)
	}
	s.current = name
	return nil
}

// GridSearchNames lists completed searches
func (s *RestorerService) GridSearchNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.searches))
	for name := range s.searches {
		names = append(names, name)
	}
	return names
}

// CurrentGridSearch returns the search current for optimizer queries
func (s *RestorerService) CurrentGridSearch() (*restorer.GridSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

func (s *RestorerService) currentLocked() (*restorer.GridSearch, error) {
	if s.current == "" {
		return nil, fmt.Errorf("%w: run add_grid_search or load_grid_search first", restorer.ErrNoGridSearchSelected)
	}
	return s.searches[s.current], nil
}
