// Package session holds the explicit per-run pipeline state. Each stage
// consumes the previous stage's artifact and replaces its own wholly; a stage
// failure leaves every stored artifact untouched.
package session

import (
	"github.com/google/uuid"

	"tasker/internal/assign"
	"tasker/internal/prd"
)

// Session is the state of one brief-to-email run.
type Session struct {
	ID          string
	Brief       prd.Brief
	PRD         *prd.Document
	PRDText     string
	Tasks       []string
	Assignments []assign.Assignment
	EmailBody   string
}

// New creates an empty session with a fresh ID.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Template is a built-in example brief.
type Template struct {
	Name        string
	Description string
}

// Templates returns the built-in example briefs, usable as starting points
// when no custom brief is supplied.
func Templates() []Template {
	return []Template{
		{
			Name:        "AI-Powered Customer Support Chatbot",
			Description: "Develop a chatbot that can answer customer questions and resolve common issues. The chatbot should be able to understand natural language and provide personalized responses.",
		},
		{
			Name:        "E-commerce Website Redesign",
			Description: "Redesign an e-commerce website to improve the user experience and increase sales. The project will involve updating the UI, improving navigation, and adding new features.",
		},
		{
			Name:        "Mobile App for Task Management",
			Description: "Create a mobile app that helps users organize their tasks and stay productive. The app should have features like task creation, deadlines, and reminders.",
		},
	}
}

// FindTemplate returns the template with the given name, or false.
func FindTemplate(name string) (Template, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
