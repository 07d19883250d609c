package assign

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasker/internal/embedding"
	"tasker/internal/logging"
)

// Assignment records one task matched to the employee whose skills embed
// closest to it.
type Assignment struct {
	Task       string
	AssignedTo string
	Skills     string
	Confidence float64
}

// ConfidencePercent renders the similarity score as a percentage.
func (a Assignment) ConfidencePercent() string {
	return fmt.Sprintf("%.2f%%", a.Confidence*100)
}

// Engine assigns tasks to employees greedily and independently: each task
// goes to the employee with maximum cosine similarity, with no load
// balancing across employees. That trade-off is deliberate.
type Engine struct {
	embedder embedding.Engine
}

// NewEngine creates an assignment engine over the given embedder.
func NewEngine(embedder embedding.Engine) *Engine {
	return &Engine{embedder: embedder}
}

// Assign matches every task to an employee. Skill strings are embedded once
// up front; each task is then embedded and compared against all employees.
// Ties keep the lowest employee index. Any embedding failure aborts with no
// partial assignment list.
func (e *Engine) Assign(ctx context.Context, tasks []string, employees []Employee) ([]Assignment, error) {
	timer := logging.StartTimer(logging.CategoryAssign, "Assign")
	defer timer.Stop()

	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks to assign")
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("no employees to assign to")
	}
	if e.embedder == nil {
		return nil, fmt.Errorf("no embedding engine configured")
	}

	logging.Assign("Assigning %d tasks across %d employees (engine=%s)",
		len(tasks), len(employees), e.embedder.Name())

	skills := make([]string, len(employees))
	for i, emp := range employees {
		skills[i] = emp.Skills
	}
	skillVectors, err := e.embedder.EmbedBatch(ctx, skills)
	if err != nil {
		logging.AssignError("Failed to embed employee skills: %v", err)
		return nil, fmt.Errorf("failed to embed employee skills: %w", err)
	}

	assignments := make([]Assignment, 0, len(tasks))
	for _, task := range tasks {
		taskVector, err := e.embedder.Embed(ctx, task)
		if err != nil {
			logging.AssignError("Failed to embed task %q: %v", task, err)
			return nil, fmt.Errorf("failed to embed task %q: %w", task, err)
		}

		idx, similarity, err := embedding.BestMatch(taskVector, skillVectors)
		if err != nil {
			return nil, fmt.Errorf("failed to match task %q: %w", task, err)
		}

		logging.AssignDebug("Task %q -> %s (%.4f)", task, employees[idx].Name, similarity)
		assignments = append(assignments, Assignment{
			Task:       task,
			AssignedTo: employees[idx].Name,
			Skills:     employees[idx].Skills,
			Confidence: similarity,
		})
	}

	logging.Assign("Assigned %d tasks", len(assignments))
	return assignments, nil
}

// WriteCSV exports assignments with the fixed column order
// Task, Assigned To, Skills, Confidence.
func WriteCSV(w io.Writer, assignments []Assignment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Task", "Assigned To", "Skills", "Confidence"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range assignments {
		record := []string{a.Task, a.AssignedTo, a.Skills, a.ConfidencePercent()}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV parses an assignment table previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]Assignment, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("assignments CSV has no rows")
	}

	var assignments []Assignment
	for _, record := range records[1:] {
		if len(record) < 4 {
			return nil, fmt.Errorf("assignment row has %d columns, want 4", len(record))
		}
		confidence, err := strconv.ParseFloat(strings.TrimSuffix(record[3], "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad confidence %q: %w", record[3], err)
		}
		assignments = append(assignments, Assignment{
			Task:       record[0],
			AssignedTo: record[1],
			Skills:     record[2],
			Confidence: confidence / 100,
		})
	}
	return assignments, nil
}
