package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := tempGraphFile(t, dir, "g.json")

	_, err := execute(t, "--format", "xml", "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := tempGraphFile(t, dir, "g.json")

	output, err := execute(t, "--format", "json", "inspect", path)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "boom", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
