package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"restorer-go/internal/model/restorer"
)

func TestSnapshot_Roundtrip(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat", "the dog ran"})
	if _, err := svc.AddGridSearch("search",
		[]int{2, 4}, []float64{1.0, 2.0},
		[]string{"the cat sat"}, []string{"thecatsat"}); err != nil {
		t.Fatalf("AddGridSearch failed: %v", err)
	}
	if err := svc.SetHyperparams(restorer.Hyperparams{L: 7, Lambda: 3.0}); err != nil {
		t.Fatalf("SetHyperparams failed: %v", err)
	}

	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	loaded, err := FromSnapshot(snap, zap.NewNop())
	if err != nil {
		t.Fatalf("FromSnapshot failed: %v", err)
	}

	if hp := loaded.Hyperparams(); hp != (restorer.Hyperparams{L: 7, Lambda: 3.0}) {
		t.Errorf("Hyperparameters not preserved: %+v", hp)
	}
	search, err := loaded.CurrentGridSearch()
	if err != nil {
		t.Fatalf("Current grid search not preserved: %v", err)
	}
	if search.Name != "search" || len(search.Rows) != 4 {
		t.Errorf("Grid search table not preserved: %+v", search)
	}

	// The loaded model restores identically.
	want, err := svc.Restore("thecatsat")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	got, err := loaded.Restore("thecatsat")
	if err != nil {
		t.Fatalf("Restore from loaded model failed: %v", err)
	}
	if got != want {
		t.Errorf("Loaded model restores %q, original restores %q", got, want)
	}
}

func TestSnapshot_Untrained(t *testing.T) {
	svc := NewRestorerService(restorer.NewAlphabet(nil, nil), zap.NewNop())
	if _, err := svc.Snapshot(); !errors.Is(err, restorer.ErrEmptyModel) {
		t.Fatalf("Expected ErrEmptyModel, got %v", err)
	}
}

func TestFromSnapshot_BadVersion(t *testing.T) {
	svc := trainedService(t, []string{"the cat sat"})
	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	snap.Version = "0.9"
	if _, err := FromSnapshot(snap, zap.NewNop()); !errors.Is(err, restorer.ErrConfiguration) {
		t.Fatalf("Expected ErrConfiguration for unsupported version, got %v", err)
	}
}

func TestPersistence_SaveAndLoad(t *testing.T) {
	logger := zap.NewNop()
	persistence, err := NewPersistence(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}

	svc := trainedService(t, []string{"the cat sat", "the dog ran"})
	if err := persistence.Save(svc, "tamil"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !persistence.ModelExists("tamil") {
		t.Fatal("Expected saved model to exist")
	}

	loaded, err := persistence.Load("tamil", logger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := loaded.Restore("thedogran")
	if err != nil {
		t.Fatalf("Restore from loaded model failed: %v", err)
	}
	if got != "the dog ran" {
		t.Errorf("Expected 'the dog ran', got %q", got)
	}

	if err := persistence.Delete("tamil"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if persistence.ModelExists("tamil") {
		t.Error("Expected model to be deleted")
	}
}

func TestPersistence_LoadMissing(t *testing.T) {
	persistence, err := NewPersistence(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}
	if _, err := persistence.Load("nope", zap.NewNop()); err == nil {
		t.Fatal("Expected an error for a missing snapshot")
	}
}
