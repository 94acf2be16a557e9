package service

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
)

// SnapshotVersion is the current serialization schema version
const SnapshotVersion = "1.0"

// Snapshot is a versioned, serializable image of the full restorer state:
// the n-gram tables, the model parameters, the active hyperparameters and
// the grid-search result tables. It deliberately contains only plain maps,
// slices and scalars so any encoder can handle it.
type Snapshot struct {
	Version   string
	CreatedAt time.Time

	// Model parameters.
	MaxOrder        int
	CaseFold        bool
	UnknownFunction string

	// N-gram tables: Counts[k] maps (k+1)-grams to occurrence counts.
	Counts         []map[string]int64
	TotalWords     int64
	LengthMean     float64
	LengthVariance float64
	ObservedChars  []rune

	// Boundary-letter classification.
	InitialOnly []rune
	FinalOnly   []rune

	// Mutable runtime state.
	Hyperparams restorer.Hyperparams
	Searches    []restorer.GridSearch
	Current     string
}

// Snapshot exports the full state of a trained service
func (s *RestorerService) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.estimator == nil {
		return nil, fmt.Errorf("%w: nothing to snapshot", restorer.ErrEmptyModel)
	}

	model := s.estimator.Model()
	snap := &Snapshot{
		Version:         SnapshotVersion,
		CreatedAt:       time.Now(),
		MaxOrder:        model.maxOrder,
		CaseFold:        model.caseFold,
		UnknownFunction: s.estimator.Unknown().Name(),
		Counts:          make([]map[string]int64, len(model.counts)),
		TotalWords:      model.totalWords,
		LengthMean:      model.lengthMean,
		LengthVariance:  model.lengthVariance,
		InitialOnly:     s.alphabet.InitialOnly(),
		FinalOnly:       s.alphabet.FinalOnly(),
		Hyperparams:     s.hyperparams,
		Current:         s.current,
	}
	for k, table := range model.counts {
		copied := make(map[string]int64, len(table))
		for ngram, count := range table {
			copied[ngram] = count
		}
		snap.Counts[k] = copied
	}
	for r := range model.observedChars {
		snap.ObservedChars = append(snap.ObservedChars, r)
	}
	for _, search := range s.searches {
		snap.Searches = append(snap.Searches, *search)
	}
	return snap, nil
}

// FromSnapshot reconstructs a service from a snapshot
func FromSnapshot(snap *Snapshot, logger *zap.Logger) (*RestorerService, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %q", restorer.ErrConfiguration, snap.Version)
	}
	if snap.MaxOrder < 1 || len(snap.Counts) != snap.MaxOrder {
		return nil, fmt.Errorf("%w: snapshot has %d count tables for max order %d",
			restorer.ErrConfiguration, len(snap.Counts), snap.MaxOrder)
	}

	model := &FrequencyModel{
		maxOrder:       snap.MaxOrder,
		caseFold:       snap.CaseFold,
		counts:         make([]map[string]int64, snap.MaxOrder),
		totalWords:     snap.TotalWords,
		lengthMean:     snap.LengthMean,
		lengthVariance: snap.LengthVariance,
		observedChars:  make(map[rune]bool, len(snap.ObservedChars)),
	}
	for k, table := range snap.Counts {
		copied := make(map[string]int64, len(table))
		for ngram, count := range table {
			copied[ngram] = count
		}
		model.counts[k] = copied
	}
	model.distinctWords = len(model.counts[0])
	for _, r := range snap.ObservedChars {
		model.observedChars[r] = true
	}

	unknown, err := NewUnknownWordModel(snap.UnknownFunction, model)
	if err != nil {
		return nil, err
	}

	svc := NewRestorerService(restorer.NewAlphabet(snap.InitialOnly, snap.FinalOnly), logger)
	svc.estimator = NewEstimator(model, unknown)
	svc.segmenter = NewSegmenter(svc.estimator, svc.alphabet)
	if snap.Hyperparams != (restorer.Hyperparams{}) {
		svc.hyperparams = snap.Hyperparams
	}
	for i := range snap.Searches {
		search := snap.Searches[i]
		svc.searches[search.Name] = &search
	}
	if snap.Current != "" {
		if _, ok := svc.searches[snap.Current]; !ok {
			return nil, fmt.Errorf("%w: snapshot selects missing grid search %q",
				restorer.ErrConfiguration, snap.Current)
		}
		svc.current = snap.Current
	}

	logger.Info("Finished loading model",
		zap.Int("max_order", snap.MaxOrder),
		zap.Int64("total_words", snap.TotalWords),
		zap.Int("grid_searches", len(snap.Searches)))
	return svc, nil
}

// Persistence handles saving and loading model snapshots
type Persistence struct {
	outputDir string
	logger    *zap.Logger
}

// NewPersistence creates a persistence manager rooted at outputDir
func NewPersistence(outputDir string, logger *zap.Logger) (*Persistence, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Persistence{outputDir: outputDir, logger: logger}, nil
}

// ModelPath returns the file path for a named model snapshot
func (p *Persistence) ModelPath(name string) string {
	return filepath.Join(p.outputDir, fmt.Sprintf("%s_restorer.gob", name))
}

// ModelExists checks whether a saved snapshot exists under name
func (p *Persistence) ModelExists(name string) bool {
	_, err := os.Stat(p.ModelPath(name))
	return err == nil
}

// Save snapshots a service and writes it under name
func (p *Persistence) Save(svc *RestorerService, name string) error {
	snap, err := svc.Snapshot()
	if err != nil {
		return err
	}

	path := p.ModelPath(name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	p.logger.Info("Saved model snapshot",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("max_order", snap.MaxOrder),
		zap.Int64("total_words", snap.TotalWords))
	return nil
}

// Load reads the snapshot saved under name and reconstructs a service
func (p *Persistence) Load(name string, logger *zap.Logger) (*RestorerService, error) {
	path := p.ModelPath(name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no saved model found under name: %s", name)
		}
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var snap Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return FromSnapshot(&snap, logger)
}

// Delete removes the snapshot saved under name
func (p *Persistence) Delete(name string) error {
	if err := os.Remove(p.ModelPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	p.logger.Info("Deleted model snapshot", zap.String("name", name))
	return nil
}
