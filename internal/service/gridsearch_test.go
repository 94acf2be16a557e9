package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
	"restorer-go/internal/parallel"
)

func trainedService(t *testing.T, docs []string) *RestorerService {
	t.Helper()
	svc := NewRestorerService(restorer.NewAlphabet(nil, nil), zap.NewNop())
	err := svc.Train(docs, TrainOptions{MaxOrder: 2, UnknownFunction: UnknownExponential})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return svc
}

func TestAddGridSearch_CompletenessAndOrder(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat", "the dog ran"})

	search, err := svc.AddGridSearch("first",
		[]int{2, 4}, []float64{1.0, 2.0},
		[]string{"the cat sat"}, []string{"thecatsat"})
	if err != nil {
		t.Fatalf("AddGridSearch failed: %v", err)
	}

	if len(search.Rows) != 4 {
		t.Fatalf("Expected 4 rows (2 L values x 2 lambda values), got %d", len(search.Rows))
	}
	wantOrder := []restorer.Hyperparams{
		{L: 2, Lambda: 1.0}, {L: 2, Lambda: 2.0},
		{L: 4, Lambda: 1.0}, {L: 4, Lambda: 2.0},
	}
	for i, want := range wantOrder {
		if search.Rows[i].L != want.L || search.Rows[i].Lambda != want.Lambda {
			t.Errorf("Row %d: expected (L=%d, lambda=%g), got (L=%d, lambda=%g)",
				i, want.L, want.Lambda, search.Rows[i].L, search.Rows[i].Lambda)
		}
	}
	if search.ID == "" {
		t.Error("Expected a run ID to be assigned")
	}
}

func TestAddGridSearch_ParallelOrderMatchesSequential(t *testing.T) {
	refs := []string{"the cat sat", "the dog ran"}
	inputs := []string{"thecatsat", "thedogran"}

	sequential := trainedService(t, refs)
	seqSearch, err := sequential.AddGridSearchWithOptions("seq",
		[]int{2, 3, 4}, []float64{1.0, 2.0, 4.0}, refs, inputs,
		GridSearchOptions{Parallel: &parallel.Config{Enabled: false}})
	if err != nil {
		t.Fatalf("Sequential grid search failed: %v", err)
	}

	concurrent := trainedService(t, refs)
	parSearch, err := concurrent.AddGridSearchWithOptions("par",
		[]int{2, 3, 4}, []float64{1.0, 2.0, 4.0}, refs, inputs,
		GridSearchOptions{Parallel: &parallel.Config{Enabled: true, NumWorkers: 4}})
	if err != nil {
		t.Fatalf("Parallel grid search failed: %v", err)
	}

	if len(seqSearch.Rows) != len(parSearch.Rows) {
		t.Fatalf("Row count differs: %d vs %d", len(seqSearch.Rows), len(parSearch.Rows))
	}
	for i := range seqSearch.Rows {
		if seqSearch.Rows[i] != parSearch.Rows[i] {
			t.Errorf("Row %d differs between sequential and parallel runs: %+v vs %+v",
				i, seqSearch.Rows[i], parSearch.Rows[i])
		}
	}
}

func TestAddGridSearch_ShapeMismatch(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})

	_, err := svc.AddGridSearch("bad",
		[]int{2}, []float64{1.0},
		[]string{"the cat sat", "the dog ran"}, []string{"thecatsat"})
	if !errors.Is(err, restorer.ErrShapeMismatch) {
		t.Fatalf("Expected ErrShapeMismatch, got %v", err)
	}
	// The failed search must not become current.
	if _, err := svc.CurrentGridSearch(); !errors.Is(err, restorer.ErrNoGridSearchSelected) {
		t.Errorf("Expected no current grid search after a failed add, got %v", err)
	}
}

func TestAddGridSearch_InvalidValues(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})

	if _, err := svc.AddGridSearch("bad", []int{0}, []float64{1.0},
		[]string{"the cat"}, []string{"thecat"}); !errors.Is(err, restorer.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for L=0, got %v", err)
	}
	if _, err := svc.AddGridSearch("bad", []int{2}, nil,
		[]string{"the cat"}, []string{"thecat"}); !errors.Is(err, restorer.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for empty lambda values, got %v", err)
	}
}

func TestAddGridSearch_Untrained(t *testing.T) {
	svc := NewRestorerService(restorer.NewAlphabet(nil, nil), zap.NewNop())
	_, err := svc.AddGridSearch("x", []int{2}, []float64{1.0},
		[]string{"a b"}, []string{"ab"})
	if !errors.Is(err, restorer.ErrEmptyModel) {
		t.Fatalf("Expected ErrEmptyModel, got %v", err)
	}
}

func TestShowOptimalParams_SelectsBestRow(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat", "the dog ran"})

	if _, err := svc.AddGridSearch("search",
		[]int{2, 4}, []float64{1.0, 2.0},
		[]string{"the cat sat"}, []string{"thecatsat"}); err != nil {
		t.Fatalf("AddGridSearch failed: %v", err)
	}

	row, err := svc.ShowOptimalParams("f_score", "maximize")
	if err != nil {
		t.Fatalf("ShowOptimalParams failed: %v", err)
	}

	search, err := svc.CurrentGridSearch()
	if err != nil {
		t.Fatalf("CurrentGridSearch failed: %v", err)
	}
	for _, other := range search.Rows {
		if other.FScore > row.FScore {
			t.Errorf("Row %+v beats the selected row %+v", other, row)
		}
	}
	// ShowOptimalParams is a pure query.
	if hp := svc.Hyperparams(); hp != restorer.DefaultHyperparams {
		t.Errorf("ShowOptimalParams mutated hyperparameters: %+v", hp)
	}
}

func TestSetOptimalParams_WritesHyperparams(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat", "the dog ran"})

	if _, err := svc.AddGridSearch("search",
		[]int{2, 4}, []float64{1.0, 2.0},
		[]string{"the cat sat"}, []string{"thecatsat"}); err != nil {
		t.Fatalf("AddGridSearch failed: %v", err)
	}
	row, err := svc.ShowOptimalParams("f_score", "maximize")
	if err != nil {
		t.Fatalf("ShowOptimalParams failed: %v", err)
	}
	if err := svc.SetOptimalParams("f_score", "maximize"); err != nil {
		t.Fatalf("SetOptimalParams failed: %v", err)
	}

	hp := svc.Hyperparams()
	if hp.L != row.L || hp.Lambda != row.Lambda {
		t.Errorf("Expected hyperparameters (L=%d, lambda=%g), got %+v", row.L, row.Lambda, hp)
	}
}

func TestOptimizer_TieBreakKeepsFirstRow(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})
	svc.searches["tied"] = &restorer.GridSearch{
		Name: "tied",
		Beta: 1.0,
		Rows: []restorer.GridRow{
			{L: 2, Lambda: 1.0, FScore: 0.9},
			{L: 4, Lambda: 2.0, FScore: 0.9},
			{L: 8, Lambda: 4.0, FScore: 0.5},
		},
	}
	svc.current = "tied"

	row, err := svc.ShowOptimalParams("f_score", "maximize")
	if err != nil {
		t.Fatalf("ShowOptimalParams failed: %v", err)
	}
	if row.L != 2 || row.Lambda != 1.0 {
		t.Errorf("Expected the first-inserted tied row (L=2), got %+v", row)
	}

	// Same discipline when minimizing.
	row, err = svc.ShowOptimalParams("f_score", "minimize")
	if err != nil {
		t.Fatalf("ShowOptimalParams failed: %v", err)
	}
	if row.L != 8 {
		t.Errorf("Expected the minimizing row (L=8), got %+v", row)
	}
}

func TestOptimizer_NoGridSearchSelected(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})
	_, err := svc.ShowOptimalParams("f_score", "maximize")
	if !errors.Is(err, restorer.ErrNoGridSearchSelected) {
		t.Fatalf("Expected ErrNoGridSearchSelected, got %v", err)
	}
	if err := svc.SetOptimalParams("f_score", "maximize"); !errors.Is(err, restorer.ErrNoGridSearchSelected) {
		t.Fatalf("Expected ErrNoGridSearchSelected, got %v", err)
	}
}

func TestOptimizer_UnknownMetricOrDirection(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})
	if _, err := svc.ShowOptimalParams("accuracy", "maximize"); !errors.Is(err, restorer.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for unknown metric, got %v", err)
	}
	if _, err := svc.ShowOptimalParams("f_score", "sideways"); !errors.Is(err, restorer.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for unknown direction, got %v", err)
	}
}

func TestLoadGridSearch(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat", "the dog ran"})

	for _, name := range []string{"alpha", "beta"} {
		if _, err := svc.AddGridSearch(name, []int{2}, []float64{1.0},
			[]string{"the cat"}, []string{"thecat"}); err != nil {
			t.Fatalf("AddGridSearch %q failed: %v", name, err)
		}
	}

	if err := svc.LoadGridSearch("alpha"); err != nil {
		t.Fatalf("LoadGridSearch failed: %v", err)
	}
	search, err := svc.CurrentGridSearch()
	if err != nil {
		t.Fatalf("CurrentGridSearch failed: %v", err)
	}
	if search.Name != "alpha" {
		t.Errorf("Expected current search 'alpha', got %q", search.Name)
	}

	if err := svc.LoadGridSearch("missing"); !errors.Is(err, restorer.ErrNoGridSearchSelected) {
		t.Errorf("Expected ErrNoGridSearchSelected for missing name, got %v", err)
	}
}
