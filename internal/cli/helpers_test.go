package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/internal/testutil"
)

// execute runs the CLI with the given args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// tempGraphFile writes a small fleet graph to dir and returns its path.
func tempGraphFile(t *testing.T, dir, name string) string {
	t.Helper()
	schema := generic.StringSchema{}.
		WithName("fleet").
		WithNodeWhitelist("person", "ship")
	g := testutil.BuildGraph(t, schema,
		[]testutil.NodeSpec{{ID: "ada", Type: "person"}, {ID: "orca", Type: "ship"}},
		[]testutil.EdgeSpec{{ID: "c1", Type: "crews", Source: "ada", Target: "orca"}},
	)
	path := filepath.Join(dir, name)
	require.NoError(t, writeGraph(path, g))
	return path
}

// tempSchemaFile writes a CUE schema to dir and returns its path.
func tempSchemaFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "schema.cue")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
