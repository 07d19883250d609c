package assign

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns fixed vectors keyed by exact text.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return vec, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return 2 }
func (f *fakeEmbedder) Name() string    { return "fake" }

func nlpScenario() (*fakeEmbedder, []string, []Employee) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Implement feature: Natural language processing": {0.9, 0.1},
		"python,nlp": {0.8, 0.2},
		"design":     {0.1, 0.9},
	}}
	tasks := []string{"Implement feature: Natural language processing"}
	employees := []Employee{
		{Name: "Ann", Skills: "python,nlp"},
		{Name: "Bob", Skills: "design"},
	}
	return embedder, tasks, employees
}

func TestAssignSelectsClosestSkills(t *testing.T) {
	embedder, tasks, employees := nlpScenario()

	got, err := NewEngine(embedder).Assign(context.Background(), tasks, employees)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Ann", got[0].AssignedTo)
	assert.Equal(t, "python,nlp", got[0].Skills)
	assert.Greater(t, got[0].Confidence, 0.0)
}

func TestAssignDeterministic(t *testing.T) {
	embedder, tasks, employees := nlpScenario()
	engine := NewEngine(embedder)

	first, err := engine.Assign(context.Background(), tasks, employees)
	require.NoError(t, err)
	second, err := engine.Assign(context.Background(), tasks, employees)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssignTieKeepsLowestIndex(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Ship it": {1, 0},
		"go":      {2, 0},
		"rust":    {3, 0},
	}}
	employees := []Employee{
		{Name: "First", Skills: "go"},
		{Name: "Second", Skills: "rust"},
	}

	got, err := NewEngine(embedder).Assign(context.Background(), []string{"Ship it"}, employees)
	require.NoError(t, err)
	assert.Equal(t, "First", got[0].AssignedTo)
}

func TestAssignEmbeddingFailureYieldsNoPartialResults(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"first task covered by vectors": {1, 0},
		"go":                            {1, 0},
	}}
	employees := []Employee{{Name: "Ann", Skills: "go"}}
	tasks := []string{"first task covered by vectors", "second task with no vector"}

	got, err := NewEngine(embedder).Assign(context.Background(), tasks, employees)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestAssignRejectsEmptyInputs(t *testing.T) {
	engine := NewEngine(&fakeEmbedder{})

	_, err := engine.Assign(context.Background(), nil, []Employee{{Name: "Ann"}})
	assert.Error(t, err)

	_, err = engine.Assign(context.Background(), []string{"task"}, nil)
	assert.Error(t, err)
}

func TestConfidencePercentFormat(t *testing.T) {
	a := Assignment{Confidence: 0.87654}
	assert.Equal(t, "87.65%", a.ConfidencePercent())

	negative := Assignment{Confidence: -0.25}
	assert.Equal(t, "-25.00%", negative.ConfidencePercent())
}

func TestWriteCSV(t *testing.T) {
	assignments := []Assignment{
		{Task: "Build API", AssignedTo: "Ann", Skills: "go, rest", Confidence: 0.9},
		{Task: "Design, review", AssignedTo: "Bob", Skills: "figma", Confidence: 0.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, assignments))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Task,Assigned To,Skills,Confidence", lines[0])
	assert.Equal(t, "Build API,Ann,\"go, rest\",90.00%", lines[1])
	assert.Equal(t, "\"Design, review\",Bob,figma,50.00%", lines[2])
}

func TestReadCSVRoundTrip(t *testing.T) {
	assignments := []Assignment{
		{Task: "Build API", AssignedTo: "Ann", Skills: "go, rest", Confidence: 0.9},
		{Task: "Design UI", AssignedTo: "Bob", Skills: "figma", Confidence: 0.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, assignments))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ann", got[0].AssignedTo)
	assert.InDelta(t, 0.9, got[0].Confidence, 0.0001)
	assert.Equal(t, "go, rest", got[0].Skills)
}

func TestReadCSVRejectsEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Task,Assigned To,Skills,Confidence\n"))
	assert.Error(t, err)
}
