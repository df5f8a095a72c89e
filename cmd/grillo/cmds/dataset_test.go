package cmds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	content := `{"completion": "<think>a</think>", "reference": "<think>a</think>"}

{"completion": "b", "reference": "c"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadDataset(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "<think>a</think>", rows[0].Completion)
	assert.Equal(t, "c", rows[1].Reference)
}

func TestReadDatasetBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0o644))

	_, err := ReadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":1:")
}

func TestLoadRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `mode: action
dataset: /data/rollouts.jsonl
tokenizer: cl100k_base
workers: 8
stream: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rc, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "action", rc.Mode)
	assert.Equal(t, "/data/rollouts.jsonl", rc.Dataset)
	assert.Equal(t, "cl100k_base", rc.Tokenizer)
	assert.Equal(t, 8, rc.Workers)
	assert.True(t, rc.Stream)
}
