// Package tasks synthesizes a phase-ordered task list from PRD text. The
// scaffolding (planning head, platform setup, testing and deployment tail) is
// deterministic; draft generation only adds mid-list richness and its absence
// never fails synthesis.
package tasks

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
	// Hard bound on the synthesized list; see retain.
	maxTasks = 25

	// Dedup key length for task lines.
	taskKeyLen = 60

	// Length bounds for feature bullets turned into tasks.
	featureTaskMinLen = 5
	featureTaskMaxLen = 150

	// Length bounds for generator-produced task lines.
	generatedMinLen = 10
	generatedMaxLen = 200

	// How much PRD text goes into the generation prompt.
	promptPRDChars = 1000
)

// orderedPrefixes are the leading markers stripped from generated task lines.
// Only the first matching prefix is removed.
var orderedPrefixes = []string{"1.", "2.", "3.", "4.", "5.", "-", "*"}

// platform captures which setup/build/testing branch applies. iOS suppresses
// Android; either native platform suppresses cross-platform.
type platform struct {
	ios   bool
	andr  bool
	cross bool
}

func (p platform) native() bool { return p.ios || p.andr }

func detectPlatform(prdLower, nameLower string) platform {
	var p platform
	p.ios = classify.HasIOSSignal(prdLower) || strings.Contains(nameLower, "ios")
	p.andr = classify.HasAndroidSignal(prdLower) && !p.ios
	p.cross = !p.native() &&
		(strings.Contains(prdLower, "react native") || strings.Contains(prdLower, "flutter") || strings.Contains(prdLower, "cross-platform"))
	return p
}

// projectNameLine returns the lower-cased remainder of the line introducing
// the document title, or "" when absent.
func projectNameLine(prdLower string) string {
	const marker = "product requirements document:"
	idx := strings.Index(prdLower, marker)
	if idx < 0 {
		return ""
	}
	rest := prdLower[idx+len(marker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// Synthesize builds the ordered task list for the given PRD text. The drafter
// may be nil; only an empty PRD is an error.
func Synthesize(ctx context.Context, drafter *generation.Drafter, prdText string) ([]string, error) {
	timer := logging.StartTimer(logging.CategoryTasks, "Synthesize")
	defer timer.Stop()

	if strings.TrimSpace(prdText) == "" {
		return nil, fmt.Errorf("PRD text is required")
	}

	if drafter == nil {
		drafter = generation.NewDrafter(nil)
	}

	prdLower := strings.ToLower(prdText)
	nameLower := projectNameLine(prdLower)
	p := detectPlatform(prdLower, nameLower)
	logging.Tasks("Synthesizing tasks (ios=%t android=%t cross=%t)", p.ios, p.andr, p.cross)

	var list []string

	// Phase 1: planning and setup.
	list = append(list,
		"Review and analyze PRD requirements thoroughly",
		"Create detailed technical design document",
	)
	list = append(list, setupTasks(p)...)
	list = append(list, "Initialize project repository and version control")

	list = append(list, featureTasks(prdText)...)
	list = append(list, toolTasks(prdText, p)...)
	list = append(list, buildTasks(p, prdLower)...)
	list = append(list, crossCuttingTasks(prdLower)...)

	prompt := "Generate a detailed task list for this project PRD:\n\n" + headRunes(prdText, promptPRDChars) + "\n\nTasks:"
	generated := drafter.Draft(ctx, prompt)
	list = appendGenerated(list, generated)

	list = append(list, tailTasks(p)...)
	list = append(list, "Create user documentation and guides")

	deduped := extract.Dedupe(list, taskKeyLen)
	retained := retain(deduped)
	logging.TasksDebug("Task counts: raw=%d deduped=%d retained=%d", len(list), len(deduped), len(retained))
	return retained, nil
}

func setupTasks(p platform) []string {
	switch {
	case p.ios:
		return []string{
			"Install and configure Xcode development environment",
			"Set up Apple Developer account and certificates",
			"Create new Xcode project with Swift/SwiftUI",
			"Configure project settings (bundle ID, version, etc.)",
		}
	case p.andr:
		return []string{
			"Install and configure Android Studio",
			"Set up Android SDK and required tools",
			"Create new Android project with Kotlin/Java",
			"Configure app manifest and build.gradle",
		}
	case p.cross:
		return []string{
			"Set up React Native or Flutter development environment",
			"Initialize cross-platform project structure",
			"Configure platform-specific settings",
		}
	default:
		return []string{"Set up development environment and tools"}
	}
}

// featureTasks walks the PRD lines tracking whether the cursor is inside a
// heading-delimited feature section and turns its bullets into tasks.
func featureTasks(prdText string) []string {
	var out []string
	inSection := false
	for _, line := range strings.Split(prdText, "\n") {
		lower := strings.ToLower(line)
		if isHeading(line) {
			inSection = strings.Contains(lower, "feature")
			continue
		}
		if !inSection {
			continue
		}
		bullet, ok := bulletText(line)
		if !ok {
			continue
		}
		if len(bullet) < featureTaskMinLen || len(bullet) > featureTaskMaxLen {
			continue
		}
		out = append(out, "Implement feature: "+bullet)
	}
	return out
}

// toolTasks does the same for tool/technology sections. Tool bullets already
// covered by the platform setup tasks are skipped.
func toolTasks(prdText string, p platform) []string {
	var out []string
	inSection := false
	for _, line := range strings.Split(prdText, "\n") {
		lower := strings.ToLower(line)
		if isHeading(line) {
			inSection = strings.Contains(lower, "tool") || strings.Contains(lower, "technolog")
			continue
		}
		if !inSection {
			continue
		}
		bullet, ok := bulletText(line)
		if !ok || len(bullet) <= featureTaskMinLen {
			continue
		}
		bulletLower := strings.ToLower(bullet)
		if p.ios && strings.Contains(bulletLower, "xcode") {
			continue
		}
		if p.andr && strings.Contains(bulletLower, "android studio") {
			continue
		}
		out = append(out, "Set up and configure "+bullet)
	}
	return out
}

func isHeading(line string) bool {
	return strings.Contains(line, "##")
}

func bulletText(line string) (string, bool) {
	idx := strings.Index(line, "- ")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+2:]), true
}

func buildTasks(p platform, prdLower string) []string {
	switch {
	case p.ios:
		return []string{
			"Design iOS UI/UX following Human Interface Guidelines",
			"Implement SwiftUI views or UIKit components",
			"Set up Core Data or CloudKit for data persistence",
			"Configure App Store Connect and app metadata",
			"Implement push notifications using APNs",
			"Add app icons and launch screens for all device sizes",
		}
	case p.andr:
		return []string{
			"Design Android UI/UX following Material Design guidelines",
			"Implement Jetpack Compose or XML layouts",
			"Set up Room database or SQLite for local storage",
			"Configure Google Play Console and app listing",
			"Implement Firebase Cloud Messaging for push notifications",
			"Add app icons and adaptive icons for different densities",
		}
	}
	if strings.Contains(prdLower, "frontend") || strings.Contains(prdLower, "ui") || strings.Contains(prdLower, "interface") {
		return []string{
			"Design user interface mockups and wireframes",
			"Implement responsive frontend components",
			"Integrate frontend with backend APIs",
		}
	}
	return nil
}

func crossCuttingTasks(prdLower string) []string {
	var out []string
	if strings.Contains(prdLower, "backend") || strings.Contains(prdLower, "api") {
		out = append(out,
			"Design and develop RESTful API endpoints",
			"Implement API authentication and authorization",
			"Create API documentation",
		)
	}
	if strings.Contains(prdLower, "database") || strings.Contains(prdLower, "data") {
		out = append(out,
			"Design database schema and relationships",
			"Implement database migrations",
			"Set up database indexing and optimization",
		)
	}
	if strings.Contains(prdLower, "authentication") || strings.Contains(prdLower, "security") {
		out = append(out,
			"Implement user authentication system",
			"Add security measures and data encryption",
			"Set up role-based access control",
		)
	}
	return out
}

// appendGenerated merges generator output into the list. A generated line is
// dropped when it contains, or is contained by, any task already collected.
// This containment check is deliberately stronger than the prefix-key dedup.
func appendGenerated(list []string, generated string) []string {
	for _, line := range strings.Split(generated, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, prefix := range orderedPrefixes {
			if strings.HasPrefix(line, prefix) {
				line = strings.TrimSpace(line[len(prefix):])
				break
			}
		}
		if len(line) < generatedMinLen || len(line) > generatedMaxLen {
			continue
		}
		lineLower := strings.ToLower(line)
		dup := false
		for _, existing := range list {
			existingLower := strings.ToLower(existing)
			if strings.Contains(existingLower, lineLower) || strings.Contains(lineLower, existingLower) {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, line)
		}
	}
	return list
}

func tailTasks(p platform) []string {
	out := []string{
		"Write comprehensive unit tests",
		"Implement integration tests",
	}
	switch {
	case p.ios:
		out = append(out,
			"Test on iOS Simulator and physical devices",
			"Configure TestFlight for beta testing",
			"Submit app for App Store review",
			"Set up App Store analytics and crash reporting",
		)
	case p.andr:
		out = append(out,
			"Test on Android emulator and physical devices",
			"Set up internal testing track in Google Play Console",
			"Submit app for Google Play Store review",
			"Configure Google Play Console analytics",
		)
	default:
		out = append(out,
			"Perform code review and refactoring",
			"Set up CI/CD pipeline",
			"Deploy to staging environment",
			"Perform user acceptance testing (UAT)",
			"Deploy to production environment",
			"Set up monitoring and logging",
		)
	}
	return out
}

// retain bounds the list to maxTasks keeping the planning head, up to 15
// development tasks from the middle, and the deployment tail.
func retain(list []string) []string {
	if len(list) <= maxTasks {
		return list
	}
	out := make([]string, 0, maxTasks)
	out = append(out, list[:5]...)
	middle := list[5 : len(list)-5]
	if len(middle) > 15 {
		middle = middle[:15]
	}
	out = append(out, middle...)
	out = append(out, list[len(list)-5:]...)
	return out
}

func headRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
