package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"tasker/internal/assign"
	"tasker/internal/config"
	"tasker/internal/embedding"
	"tasker/internal/generation"
	"tasker/internal/prd"
)

func TestMain(m *testing.M) {
	// opencensus (a transitive dependency of the genai SDK) starts a
	// permanent background worker goroutine at package init.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// testPipeline wires a pipeline with a no-op drafter and the given embedder,
// bypassing the lazy config-driven construction.
func testPipeline(embedder embedding.Engine) *Pipeline {
	p := NewPipeline(config.DefaultUserConfig())
	p.drafterOnce.Do(func() {})
	p.drafter = generation.NewDrafter(nil)
	p.embedderOnce.Do(func() {})
	p.embedder = embedder
	return p
}

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Cheap deterministic vector derived from the text length.
	return []float32{float32(len(text)), 1}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 2 }
func (s *stubEmbedder) Name() string    { return "stub" }

func TestNewSessionHasUniqueID(t *testing.T) {
	a, b := New(), New()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
}

func TestTemplates(t *testing.T) {
	all := Templates()
	if len(all) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(all))
	}

	tmpl, ok := FindTemplate("AI-Powered Customer Support Chatbot")
	if !ok {
		t.Fatal("chatbot template not found")
	}
	if !strings.Contains(tmpl.Description, "chatbot") {
		t.Errorf("unexpected template description: %q", tmpl.Description)
	}

	if _, ok := FindTemplate("nope"); ok {
		t.Fatal("FindTemplate should miss on unknown name")
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	p := testPipeline(&stubEmbedder{})
	s := New()
	ctx := context.Background()

	brief := prd.Brief{
		Name:        "Chatbot",
		Description: "Develop a chatbot that can answer customer questions.",
	}
	if err := p.GeneratePRD(ctx, s, brief); err != nil {
		t.Fatalf("GeneratePRD failed: %v", err)
	}
	if !strings.HasPrefix(s.PRDText, "# Product Requirements Document: Chatbot") {
		t.Fatalf("unexpected PRD text: %q", s.PRDText[:60])
	}

	if err := p.GenerateTasks(ctx, s); err != nil {
		t.Fatalf("GenerateTasks failed: %v", err)
	}
	if len(s.Tasks) == 0 || len(s.Tasks) > 25 {
		t.Fatalf("task count out of bounds: %d", len(s.Tasks))
	}

	employees := []assign.Employee{
		{Name: "Ann", Skills: "python, nlp"},
		{Name: "Bob", Skills: "design"},
	}
	if err := p.AssignTasks(ctx, s, employees); err != nil {
		t.Fatalf("AssignTasks failed: %v", err)
	}
	if len(s.Assignments) != len(s.Tasks) {
		t.Fatalf("expected one assignment per task, got %d for %d tasks", len(s.Assignments), len(s.Tasks))
	}

	if err := p.ComposeEmail(ctx, s); err != nil {
		t.Fatalf("ComposeEmail failed: %v", err)
	}
	if !strings.HasPrefix(s.EmailBody, "Hello,") {
		t.Fatalf("expected deterministic template body, got %q", s.EmailBody)
	}
}

func TestGeneratePRDFailureLeavesSessionUntouched(t *testing.T) {
	p := testPipeline(&stubEmbedder{})
	s := New()
	s.PRDText = "previous PRD"

	err := p.GeneratePRD(context.Background(), s, prd.Brief{Name: "", Description: ""})
	if err == nil {
		t.Fatal("expected error for empty brief")
	}
	if s.PRDText != "previous PRD" {
		t.Fatalf("prior PRD clobbered: %q", s.PRDText)
	}
}

func TestGenerateTasksFailureLeavesPriorTasks(t *testing.T) {
	p := testPipeline(&stubEmbedder{})
	s := New()
	s.Tasks = []string{"keep me"}

	if err := p.GenerateTasks(context.Background(), s); err == nil {
		t.Fatal("expected error for empty PRD text")
	}
	if len(s.Tasks) != 1 || s.Tasks[0] != "keep me" {
		t.Fatalf("prior tasks clobbered: %v", s.Tasks)
	}
}

func TestAssignTasksFailureLeavesPriorAssignments(t *testing.T) {
	p := testPipeline(&stubEmbedder{err: fmt.Errorf("model offline")})
	s := New()
	s.Tasks = []string{"a task to assign"}
	prior := []assign.Assignment{{Task: "old", AssignedTo: "Ann"}}
	s.Assignments = prior

	err := p.AssignTasks(context.Background(), s, []assign.Employee{{Name: "Ann", Skills: "go"}})
	if err == nil {
		t.Fatal("expected error from failing embedder")
	}
	if len(s.Assignments) != 1 || s.Assignments[0].Task != "old" {
		t.Fatalf("prior assignments clobbered: %v", s.Assignments)
	}
}

func TestComposeEmailRequiresAssignments(t *testing.T) {
	p := testPipeline(&stubEmbedder{})
	s := New()

	if err := p.ComposeEmail(context.Background(), s); err == nil {
		t.Fatal("expected error without assignments")
	}
}
