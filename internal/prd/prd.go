// Package prd synthesizes a structured Product Requirements Document from a
// free-text project brief. Draft generation enriches the document but is never
// required: every section has a deterministic fallback.
package prd

import (
	"context"
	"fmt"
	"strings"

	"tasker/internal/classify"
	"tasker/internal/extract"
	"tasker/internal/generation"
	"tasker/internal/logging"
)

const (
	// Dedup key length for feature candidates.
	featureKeyLen = 50

	maxFeatures          = 10
	maxGeneratedFeatures = 6
	maxTools             = 8

	// Length bounds for explicit features lifted from the brief.
	explicitMinLen = 10
	explicitMaxLen = 200

	// Length bounds for features/tools extracted from generated drafts.
	draftMinLen = 15
	draftMaxLen = 150

	// How much of the overview draft makes it into the document.
	overviewExcerptChars = 300
)

// featureKeywords marks brief sentences that state a requirement.
var featureKeywords = []string{"feature", "should", "must", "need", "include", "have"}

// Brief is the user-supplied project name and description.
type Brief struct {
	Name        string
	Description string
}

// Document is a synthesized PRD.
type Document struct {
	Name        string
	Description string
	Overview    string
	Features    []string
	Tools       []string
	Category    classify.Category
}

// Synthesize builds a Document from the brief. The drafter may be nil or
// backed by an unavailable model; synthesis still succeeds with catalog
// fallbacks. Only a missing name or description is an error.
func Synthesize(ctx context.Context, drafter *generation.Drafter, brief Brief) (*Document, error) {
	timer := logging.StartTimer(logging.CategoryPRD, "Synthesize")
	defer timer.Stop()

	name := strings.TrimSpace(brief.Name)
	description := strings.TrimSpace(brief.Description)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if description == "" {
		return nil, fmt.Errorf("project description is required")
	}

	if drafter == nil {
		drafter = generation.NewDrafter(nil)
	}

	overviewDraft := drafter.Draft(ctx, fmt.Sprintf("Product Requirements Document for %s. Overview: %s", name, description))
	featuresDraft := drafter.Draft(ctx, fmt.Sprintf("Key features and functionalities for %s: %s", name, description))
	toolsDraft := drafter.Draft(ctx, fmt.Sprintf("Technologies, tools, and frameworks needed for %s: %s", name, description))
	logging.PRDDebug("Draft lengths: overview=%d features=%d tools=%d",
		len(overviewDraft), len(featuresDraft), len(toolsDraft))

	category := classify.Detect(name, description)
	logging.PRD("Synthesizing PRD for %q (category=%s)", name, category)

	features := explicitFeatures(description)
	features = append(features, extract.Sentences(featuresDraft, maxGeneratedFeatures, draftMinLen, draftMaxLen)...)
	features = extract.Dedupe(features, featureKeyLen)
	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	if len(features) == 0 {
		logging.PRDDebug("No features extracted, using %s fallback catalog", category)
		features = classify.FallbackFeatures(category)
	}

	tools := extract.Sentences(toolsDraft, maxTools, draftMinLen, draftMaxLen)
	if len(tools) == 0 {
		logging.PRDDebug("No tools extracted, using %s fallback catalog", category)
		tools = classify.FallbackTools(category)
	}

	return &Document{
		Name:        name,
		Description: description,
		Overview:    truncate(overviewDraft, overviewExcerptChars),
		Features:    features,
		Tools:       tools,
		Category:    category,
	}, nil
}

// explicitFeatures keeps brief sentences that contain a requirement keyword
// and fall within the explicit length bounds. No filler stripping or casing
// check applies here; the user's own phrasing is kept verbatim.
func explicitFeatures(description string) []string {
	var out []string
	for _, sent := range extract.Split(description) {
		if len(sent) < explicitMinLen || len(sent) > explicitMaxLen {
			continue
		}
		lower := strings.ToLower(sent)
		for _, keyword := range featureKeywords {
			if strings.Contains(lower, keyword) {
				out = append(out, sent)
				break
			}
		}
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Markdown renders the document with the fixed section order: Overview, Core
// Features, Technical Requirements (tools, static architecture), static
// Success Metrics, static Timeline & Milestones.
func (d *Document) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Product Requirements Document: %s\n\n", d.Name)

	b.WriteString("## 1. Overview\n")
	b.WriteString(d.Description)
	b.WriteString("\n\n")
	if d.Overview != "" {
		b.WriteString(d.Overview)
		b.WriteString("\n\n")
	}

	b.WriteString("## 2. Core Features\n")
	for _, feat := range d.Features {
		fmt.Fprintf(&b, "- %s\n", feat)
	}
	b.WriteString("\n")

	b.WriteString("## 3. Technical Requirements\n\n")
	b.WriteString("### Tools & Technologies\n")
	for _, tool := range d.Tools {
		fmt.Fprintf(&b, "- %s\n", tool)
	}
	b.WriteString("\n")

	b.WriteString(`### Architecture
- **Frontend**: Modern framework based on project requirements
- **Backend**: Scalable API architecture
- **Database**: Appropriate database solution (relational or NoSQL)
- **Deployment**: Cloud-based infrastructure with CI/CD pipeline
- **Security**: Authentication, authorization, and data encryption

## 4. Success Metrics
- User engagement and satisfaction rates
- Performance benchmarks (response time, uptime)
- Scalability and load handling capabilities
- Feature adoption and usage analytics

## 5. Timeline & Milestones
- Phase 1: Planning and Design
- Phase 2: Core Development
- Phase 3: Testing and Quality Assurance
- Phase 4: Deployment and Monitoring
`)

	return b.String()
}
