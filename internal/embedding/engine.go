// Package embedding generates vector embeddings for matching tasks to
// employee skills. Supports Ollama (local) and Google GenAI (cloud) backends.
package embedding

import (
	"context"
	"fmt"
	"math"

	"tasker/internal/config"
	"tasker/internal/logging"
)

// Engine generates vector embeddings for text.
type Engine interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of embeddings
	Dimensions() int

	// Name returns the engine name
	Name() string
}

// NewEngine creates an embedding engine from the user's embedding settings.
func NewEngine(cfg config.EmbeddingConfig, apiKey string) (Engine, error) {
	timer := logging.StartTimer(logging.CategoryEmbedding, "NewEngine")
	defer timer.Stop()

	logging.Embedding("Creating embedding engine with provider=%s", cfg.Provider)
	logging.EmbeddingDebug("Engine config: ollama_endpoint=%s, ollama_model=%s, genai_model=%s, task_type=%s",
		cfg.OllamaEndpoint, cfg.OllamaModel, cfg.GenAIModel, cfg.TaskType)

	var engine Engine
	var err error

	switch cfg.Provider {
	case "ollama", "":
		engine, err = NewOllamaEngine(cfg.OllamaEndpoint, cfg.OllamaModel)
	case "genai":
		engine, err = NewGenAIEngine(apiKey, cfg.GenAIModel, cfg.TaskType)
	default:
		err = fmt.Errorf("unsupported embedding provider: %s (use 'ollama' or 'genai')", cfg.Provider)
	}

	if err != nil {
		logging.Get(logging.CategoryEmbedding).Error("Failed to create embedding engine: %v", err)
		return nil, err
	}

	logging.Embedding("Embedding engine ready: name=%s, dimensions=%d", engine.Name(), engine.Dimensions())
	return engine, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical, 0 means orthogonal.
// A zero-magnitude vector yields 0 similarity rather than an error.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		logging.Get(logging.CategoryEmbedding).Error("CosineSimilarity: vector dimension mismatch: %d != %d", len(a), len(b))
		return 0, fmt.Errorf("vectors must have the same length: %d != %d", len(a), len(b))
	}

	var dotProduct, aMagnitude, bMagnitude float64
	for i := 0; i < len(a); i++ {
		dotProduct += float64(a[i] * b[i])
		aMagnitude += float64(a[i] * a[i])
		bMagnitude += float64(b[i] * b[i])
	}

	if aMagnitude == 0 || bMagnitude == 0 {
		logging.Get(logging.CategoryEmbedding).Warn("CosineSimilarity: zero magnitude vector detected")
		return 0, nil
	}

	return dotProduct / (math.Sqrt(aMagnitude) * math.Sqrt(bMagnitude)), nil
}

// BestMatch returns the index and similarity of the corpus vector most
// similar to the query. Ties keep the earliest index. Vectors whose
// dimensions disagree with the query are skipped.
func BestMatch(query []float32, corpus [][]float32) (int, float64, error) {
	if len(corpus) == 0 {
		return -1, 0, fmt.Errorf("empty corpus")
	}

	bestIdx := -1
	bestSim := math.Inf(-1)
	skipped := 0

	for i, vec := range corpus {
		sim, err := CosineSimilarity(query, vec)
		if err != nil {
			skipped++
			continue
		}
		if sim > bestSim {
			bestIdx = i
			bestSim = sim
		}
	}

	if skipped > 0 {
		logging.Get(logging.CategoryEmbedding).Warn("BestMatch: skipped %d vectors due to dimension mismatch", skipped)
	}
	if bestIdx < 0 {
		return -1, 0, fmt.Errorf("no comparable vectors in corpus")
	}

	return bestIdx, bestSim, nil
}
