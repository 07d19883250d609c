// Package email drafts a status email anchored on real assignment data. The
// generated body is only accepted when it contains the literal assignment
// summary; otherwise a deterministic template is returned, so an email that
// rewrites or drops an assignment can never escape.
package email

import (
	"context"
	"fmt"
	"strings"

	"tasker/internal/assign"
	"tasker/internal/generation"
	"tasker/internal/logging"
)

const (
	// Caps on how much context goes into the generation prompt.
	promptTaskCap      = 12
	promptExcerptLen   = 400
	templateExcerptLen = 200
)

// Request carries everything the composer needs.
type Request struct {
	Assignments []assign.Assignment
	From        string
	To          string
	Signature   string
	ProjectName string
	PRDText     string
	Tasks       []string
}

// Summary renders the literal assignment recap, one line per assignment:
// "- <task> -> <assignee> (Skills: <skills>)".
func Summary(assignments []assign.Assignment) string {
	lines := make([]string, 0, len(assignments))
	for _, a := range assignments {
		lines = append(lines, fmt.Sprintf("- %s -> %s (Skills: %s)", a.Task, a.AssignedTo, a.Skills))
	}
	return strings.Join(lines, "\n")
}

// Compose drafts the email body. The drafter may be nil or failing; in that
// case, or whenever the generated text lacks the verbatim summary, the
// deterministic template is returned.
func Compose(ctx context.Context, drafter *generation.Drafter, req Request) string {
	timer := logging.StartTimer(logging.CategoryEmail, "Compose")
	defer timer.Stop()

	summary := Summary(req.Assignments)
	excerpt := headRunes(req.PRDText, promptExcerptLen)

	if drafter == nil {
		drafter = generation.NewDrafter(nil)
	}

	generated := drafter.Draft(ctx, buildPrompt(req, summary, excerpt))

	// Verbatim-containment check: the recap must survive generation intact.
	if !strings.Contains(generated, summary) {
		logging.Email("Generated email failed containment check, using deterministic template")
		return Template(req.ProjectName, summary, excerpt, req.Signature)
	}

	logging.EmailDebug("Generated email passed containment check (%d chars)", len(generated))
	return strings.TrimSpace(generated)
}

func buildPrompt(req Request, summary, excerpt string) string {
	taskCap := req.Tasks
	if len(taskCap) > promptTaskCap {
		taskCap = taskCap[:promptTaskCap]
	}
	taskLines := make([]string, 0, len(taskCap))
	for _, t := range taskCap {
		taskLines = append(taskLines, "- "+t)
	}

	var b strings.Builder
	b.WriteString("Write a short, professional status email. Keep it concise and client-ready.\n")
	fmt.Fprintf(&b, "Project name: %s\n", req.ProjectName)
	fmt.Fprintf(&b, "From: %s\n", req.From)
	fmt.Fprintf(&b, "To: %s\n", req.To)
	b.WriteString("Structure:\n")
	b.WriteString("1) Greeting and one-sentence status summary about assignments being created.\n")
	b.WriteString("2) Bullet list EXACTLY using the provided assignments list (do not invent or repeat). Keep them brief.\n")
	b.WriteString("3) One sentence tying back to scope/context from the PRD excerpt.\n")
	b.WriteString("4) Closing line that invites follow-up.\n")
	fmt.Fprintf(&b, "Signature block (use as-is):\n%s\n", req.Signature)
	fmt.Fprintf(&b, "Assignments list (use these bullets verbatim, do not add new items):\n%s\n", summary)
	fmt.Fprintf(&b, "Tasks (raw list, optional to mention count):\n%s\n", strings.Join(taskLines, "\n"))
	fmt.Fprintf(&b, "PRD excerpt:\n%s\n", excerpt)
	b.WriteString("Return only the email body, no subject line.")
	return b.String()
}

// Template is the deterministic fallback body, byte-for-byte reconstructible
// from its inputs.
func Template(projectName, summary, prdExcerpt, signature string) string {
	return fmt.Sprintf(
		"Hello,\n\nHere is the latest assignment update for %s:\n%s\n\nScope reference: %s...\n\nPlease let me know if you need any changes or additional details.\n\n%s",
		projectName, summary, headRunes(prdExcerpt, templateExcerptLen), signature)
}

func headRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
