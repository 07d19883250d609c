package generation

import (
	"context"

	"tasker/internal/logging"
)

// DefaultMaxPromptChars approximates the prompt token budget of small local
// models (roughly 4 chars per token, 1024-token context minus generation
// headroom).
const DefaultMaxPromptChars = 3400

// Drafter wraps a Client and converts every failure mode - nil client,
// transport error, degenerate output - into an empty draft string. The
// synthesis pipeline treats an empty draft as "generator absent" and falls
// through to its deterministic catalogs, so Draft must never propagate an
// error.
type Drafter struct {
	client         Client
	maxPromptChars int
}

// NewDrafter creates a Drafter. client may be nil, in which case every Draft
// call returns "".
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client, maxPromptChars: DefaultMaxPromptChars}
}

// SetMaxPromptChars overrides the prompt budget. Values <= 0 are ignored.
func (d *Drafter) SetMaxPromptChars(n int) {
	if n > 0 {
		d.maxPromptChars = n
	}
}

// Draft generates free text for a prompt. The prompt is truncated from the
// front so that its tail fits the budget (the tail carries the instruction
// and the most recent context). Returns "" on any failure.
func (d *Drafter) Draft(ctx context.Context, prompt string) string {
	if d == nil || d.client == nil {
		return ""
	}

	timer := logging.StartTimer(logging.CategoryGenerator, "Draft")
	defer timer.Stop()

	trimmed := truncateTail(prompt, d.maxPromptChars)
	if len(trimmed) < len(prompt) {
		logging.GeneratorDebug("Draft: prompt truncated from %d to %d chars", len(prompt), len(trimmed))
	}

	text, err := d.client.Complete(ctx, trimmed)
	if err != nil {
		logging.GeneratorWarn("Draft failed, continuing with empty draft: %v", err)
		return ""
	}
	return text
}

// truncateTail keeps the trailing max runes of s.
func truncateTail(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[len(runes)-max:])
}
