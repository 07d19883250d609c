package assign

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	csvData := "name,skills\nAnn,\"python, nlp\"\nBob,design\n"

	got, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Employee{Name: "Ann", Skills: "python, nlp"}, got[0])
	assert.Equal(t, Employee{Name: "Bob", Skills: "design"}, got[1])
}

func TestLoadCSVHeaderCaseInsensitive(t *testing.T) {
	csvData := "Name,Skills\nAnn,go\n"

	got, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, "Ann", got[0].Name)
}

func TestLoadCSVExtraColumnsIgnored(t *testing.T) {
	csvData := "id,name,team,skills\n1,Ann,core,go\n"

	got, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, Employee{Name: "Ann", Skills: "go"}, got[0])
}

func TestLoadCSVMissingColumnIsFatal(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("name,role\nAnn,dev\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills")
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("name,skills\n"))
	assert.Error(t, err)
}

func TestLoadYAMLKeyed(t *testing.T) {
	data := []byte("employees:\n  - name: Ann\n    skills: python, nlp\n  - name: Bob\n    skills: design\n")

	got, err := LoadYAML(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "python, nlp", got[0].Skills)
}

func TestLoadYAMLBareList(t *testing.T) {
	data := []byte("- name: Ann\n  skills: go\n")

	got, err := LoadYAML(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].Name)
}

func TestLoadYAMLMissingName(t *testing.T) {
	data := []byte("employees:\n  - skills: go\n")

	_, err := LoadYAML(data)
	assert.Error(t, err)
}

func TestLoadRosterFileDispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,skills\nAnn,go\n"), 0644))
	yamlPath := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- name: Bob\n  skills: design\n"), 0644))

	fromCSV, err := LoadRosterFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Ann", fromCSV[0].Name)

	fromYAML, err := LoadRosterFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Bob", fromYAML[0].Name)
}
