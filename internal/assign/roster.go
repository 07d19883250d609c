// Package assign matches tasks to employees by embedding similarity and
// handles roster loading and assignment export.
package assign

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Employee is one row of the roster: a name and a free-text skills string.
type Employee struct {
	Name   string `yaml:"name"`
	Skills string `yaml:"skills"`
}

// LoadCSV reads a roster from CSV. The header must carry "name" and "skills"
// columns (case-insensitive); a missing column is a fatal input error. Other
// columns are ignored.
func LoadCSV(r io.Reader) ([]Employee, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster CSV is empty")
	}

	nameIdx, skillsIdx := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameIdx = i
		case "skills":
			skillsIdx = i
		}
	}
	if nameIdx < 0 || skillsIdx < 0 {
		return nil, fmt.Errorf("roster CSV must have 'name' and 'skills' columns")
	}

	var employees []Employee
	for _, record := range records[1:] {
		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		employees = append(employees, Employee{
			Name:   name,
			Skills: strings.TrimSpace(record[skillsIdx]),
		})
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("roster CSV has no employee rows")
	}
	return employees, nil
}

// LoadCSVFile reads a roster from a CSV file on disk.
func LoadCSVFile(path string) ([]Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

type yamlRoster struct {
	Employees []Employee `yaml:"employees"`
}

// LoadYAML reads a roster from YAML. Both a bare list and an `employees:`
// keyed document are accepted.
func LoadYAML(data []byte) ([]Employee, error) {
	var keyed yamlRoster
	if err := yaml.Unmarshal(data, &keyed); err == nil && len(keyed.Employees) > 0 {
		return validateRoster(keyed.Employees)
	}

	var bare []Employee
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}
	return validateRoster(bare)
}

// LoadYAMLFile reads a roster from a YAML file on disk.
func LoadYAMLFile(path string) ([]Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return LoadYAML(data)
}

func validateRoster(employees []Employee) ([]Employee, error) {
	if len(employees) == 0 {
		return nil, fmt.Errorf("roster has no employee entries")
	}
	for i, emp := range employees {
		if strings.TrimSpace(emp.Name) == "" {
			return nil, fmt.Errorf("roster entry %d is missing a name", i)
		}
	}
	return employees, nil
}

// LoadRosterFile dispatches on file extension: .yaml/.yml or .csv.
func LoadRosterFile(path string) ([]Employee, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return LoadYAMLFile(path)
	}
	return LoadCSVFile(path)
}
