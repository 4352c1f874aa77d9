package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, err := runCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "library")
}

func TestLibraryCommand_Table(t *testing.T) {
	out, err := runCommand(t, "library")
	require.NoError(t, err)

	assert.Contains(t, out, "Fragments:")
	assert.Contains(t, out, "c1ccccc1")
	assert.Contains(t, out, "Linkers:")
	assert.Contains(t, out, "not standalone-parseable")
}

func TestLibraryCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "library", "-o", "json")
	require.NoError(t, err)

	var payload map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Len(t, payload["fragments"], 10)
	assert.Len(t, payload["linkers"], 12)
}

func TestGenerateCommand_JSONOutput(t *testing.T) {
	out, err := runCommand(t, "generate", "-n", "10", "--seed", "42", "-o", "json")
	require.NoError(t, err)

	start := 0
	for start < len(out) && out[start] != '[' {
		start++
	}
	end := len(out) - 1
	for end > start && out[end] != ']' {
		end--
	}
	require.Less(t, start, end, "output contains a JSON array")

	var records []mtypes.RecordDTO
	require.NoError(t, json.Unmarshal([]byte(out[start:end+1]), &records))
	assert.LessOrEqual(t, len(records), 10)
	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.Descriptors.Weight, mtypes.MinDrugLikeWeight)
		assert.LessOrEqual(t, rec.Descriptors.Weight, mtypes.MaxDrugLikeWeight)
	}
}

func TestGenerateCommand_TableOutput(t *testing.T) {
	out, err := runCommand(t, "generate", "-n", "10", "--seed", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "MW (Da)")
	assert.Contains(t, out, "requested molecules")
}

func TestGenerateCommand_WritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := runCommand(t, "generate", "-n", "10", "--seed", "42", "--csv", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Molecule ID,SMILES,MW (Da),LogP,TPSA,H-Acceptors,H-Donors")
}

func TestGenerateCommand_WritesImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "img")

	_, err := runCommand(t, "generate", "-n", "5", "--seed", "42", "--images", dir, "--width", "120", "--height", "80")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Name(), "MOL_")
	assert.Contains(t, entries[0].Name(), ".png")
}

func TestGenerateCommand_SeededRunsMatch(t *testing.T) {
	first, err := runCommand(t, "generate", "-n", "8", "--seed", "5", "-o", "json")
	require.NoError(t, err)
	second, err := runCommand(t, "generate", "-n", "8", "--seed", "5", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
