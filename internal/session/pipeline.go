package session

import (
	"context"
	"fmt"
	"sync"

	"tasker/internal/assign"
	"tasker/internal/config"
	"tasker/internal/email"
	"tasker/internal/embedding"
	"tasker/internal/generation"
	"tasker/internal/logging"
	"tasker/internal/prd"
	"tasker/internal/tasks"
)

// Pipeline runs the synthesis stages over a Session. The draft generator and
// the embedding engine are created once on first use and reused for the
// process lifetime, never torn down mid-session.
type Pipeline struct {
	cfg *config.UserConfig

	drafterOnce sync.Once
	drafter     *generation.Drafter

	embedderOnce sync.Once
	embedder     embedding.Engine
	embedderErr  error
}

// NewPipeline creates a pipeline over the given user config. A nil config
// uses defaults.
func NewPipeline(cfg *config.UserConfig) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultUserConfig()
	}
	return &Pipeline{cfg: cfg}
}

// Drafter returns the shared draft generator, creating it on first call.
// A backend that cannot be constructed degrades to a drafter that always
// returns empty drafts; draft generation is never fatal.
func (p *Pipeline) Drafter() *generation.Drafter {
	p.drafterOnce.Do(func() {
		client, err := generation.NewClientFromConfig(p.cfg)
		if err != nil {
			logging.Session("Draft generator unavailable, proceeding with fallbacks: %v", err)
			client = nil
		}
		p.drafter = generation.NewDrafter(client)
		p.drafter.SetMaxPromptChars(p.cfg.GetGeneration().MaxPromptChars)
	})
	return p.drafter
}

// Embedder returns the shared embedding engine, creating it on first call.
// Unlike drafting, a missing embedding backend is an error: the assignment
// stage cannot degrade.
func (p *Pipeline) Embedder() (embedding.Engine, error) {
	p.embedderOnce.Do(func() {
		p.embedder, p.embedderErr = embedding.NewEngine(p.cfg.GetEmbedding(), p.cfg.ResolveGenAIAPIKey())
	})
	return p.embedder, p.embedderErr
}

// GeneratePRD synthesizes the PRD for the brief and stores it, along with
// its rendered markdown, on the session. Downstream artifacts are not
// invalidated here; callers decide when to regenerate them.
func (p *Pipeline) GeneratePRD(ctx context.Context, s *Session, brief prd.Brief) error {
	doc, err := prd.Synthesize(ctx, p.Drafter(), brief)
	if err != nil {
		return fmt.Errorf("PRD synthesis failed: %w", err)
	}
	s.Brief = brief
	s.PRD = doc
	s.PRDText = doc.Markdown()
	logging.Session("Session %s: PRD generated for %q (%d features, %d tools)",
		s.ID, brief.Name, len(doc.Features), len(doc.Tools))
	return nil
}

// GenerateTasks synthesizes the task list from the session's PRD text.
func (p *Pipeline) GenerateTasks(ctx context.Context, s *Session) error {
	list, err := tasks.Synthesize(ctx, p.Drafter(), s.PRDText)
	if err != nil {
		return fmt.Errorf("task synthesis failed: %w", err)
	}
	s.Tasks = list
	logging.Session("Session %s: %d tasks generated", s.ID, len(list))
	return nil
}

// AssignTasks matches the session's tasks to the given roster. On failure no
// partial assignment list replaces the stored one.
func (p *Pipeline) AssignTasks(ctx context.Context, s *Session, employees []assign.Employee) error {
	embedder, err := p.Embedder()
	if err != nil {
		return fmt.Errorf("embedding engine unavailable: %w", err)
	}

	assignments, err := assign.NewEngine(embedder).Assign(ctx, s.Tasks, employees)
	if err != nil {
		return fmt.Errorf("assignment failed: %w", err)
	}
	s.Assignments = assignments
	logging.Session("Session %s: %d assignments", s.ID, len(assignments))
	return nil
}

// ComposeEmail drafts the status email from the session's assignments and
// stores the body. The body stays editable: callers may overwrite
// s.EmailBody afterwards.
func (p *Pipeline) ComposeEmail(ctx context.Context, s *Session) error {
	if len(s.Assignments) == 0 {
		return fmt.Errorf("no assignments to report")
	}

	emailCfg := p.cfg.GetEmail()
	projectName := s.Brief.Name
	if projectName == "" {
		projectName = "Project"
	}

	s.EmailBody = email.Compose(ctx, p.Drafter(), email.Request{
		Assignments: s.Assignments,
		From:        emailCfg.From,
		To:          emailCfg.To,
		Signature:   emailCfg.Signature,
		ProjectName: projectName,
		PRDText:     s.PRDText,
		Tasks:       s.Tasks,
	})
	logging.Session("Session %s: email drafted (%d chars)", s.ID, len(s.EmailBody))
	return nil
}
