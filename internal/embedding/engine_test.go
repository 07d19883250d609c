package embedding

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdentical(t *testing.T) {
	v := []float32{0.5, 0.5, 0.7071}
	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("CosineSimilarity failed: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-6 {
		t.Errorf("expected similarity 1.0 for identical vectors, got %f", sim)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity failed: %v", err)
	}
	if math.Abs(sim) > 1e-6 {
		t.Errorf("expected similarity 0 for orthogonal vectors, got %f", sim)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity failed: %v", err)
	}
	if math.Abs(sim+1.0) > 1e-6 {
		t.Errorf("expected similarity -1.0 for opposite vectors, got %f", sim)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	sim, err := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
	if err != nil {
		t.Fatalf("CosineSimilarity failed: %v", err)
	}
	if sim != 0 {
		t.Errorf("expected 0 for zero-magnitude vector, got %f", sim)
	}
}

func TestBestMatch(t *testing.T) {
	query := []float32{1, 0}
	corpus := [][]float32{
		{0, 1},     // orthogonal
		{1, 0.1},   // close
		{0.5, 0.5}, // diagonal
		{-1, 0},    // opposite
	}

	idx, sim, err := BestMatch(query, corpus)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected best match at index 1, got %d", idx)
	}
	if sim < 0.99 {
		t.Errorf("expected high similarity, got %f", sim)
	}
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	query := []float32{1, 1}
	corpus := [][]float32{
		{2, 2},
		{3, 3},
	}

	idx, _, err := BestMatch(query, corpus)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected tie to keep index 0, got %d", idx)
	}
}

func TestBestMatchEmptyCorpus(t *testing.T) {
	if _, _, err := BestMatch([]float32{1}, nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestBestMatchSkipsMismatchedVectors(t *testing.T) {
	query := []float32{1, 0}
	corpus := [][]float32{
		{1, 2, 3}, // wrong dimensions
		{0.9, 0.1},
	}

	idx, _, err := BestMatch(query, corpus)
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1 after skipping mismatched vector, got %d", idx)
	}
}

func TestNewOllamaEngineDefaults(t *testing.T) {
	eng, err := NewOllamaEngine("", "")
	if err != nil {
		t.Fatalf("NewOllamaEngine failed: %v", err)
	}
	if eng.Name() != "ollama:embeddinggemma" {
		t.Errorf("unexpected engine name: %s", eng.Name())
	}
	if eng.Dimensions() != 768 {
		t.Errorf("unexpected dimensions: %d", eng.Dimensions())
	}
}

func TestNewGenAIEngineRequiresKey(t *testing.T) {
	if _, err := NewGenAIEngine("", "", ""); err == nil {
		t.Fatal("expected error when API key is missing")
	}
}
