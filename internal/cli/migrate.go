package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/schemafile"
)

// MigrateResult reports a completed migration.
type MigrateResult struct {
	Schema       string `json:"schema"`
	Output       string `json:"output"`
	Nodes        int    `json:"nodes"`
	Edges        int    `json:"edges"`
	DroppedNodes int    `json:"dropped_nodes"`
	DroppedEdges int    `json:"dropped_edges"`
}

func (r MigrateResult) String() string {
	return fmt.Sprintf("wrote %s under %s (%d nodes, %d edges; dropped %d nodes, %d edges)",
		r.Output, r.Schema, r.Nodes, r.Edges, r.DroppedNodes, r.DroppedEdges)
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaPath, output string

	cmd := &cobra.Command{
		Use:   "migrate <graph-file>",
		Short: "Migrate a graph file to a new schema",
		Long: `Migrate a graph file to the schema in a CUE file.

Entities whose type the new schema no longer allows are dropped, along
with edges that lose an endpoint. Edges over a tightened quantity cap
are trimmed from the end of their source's outgoing order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, args[0], schemaPath, output, cmd)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "CUE schema file to migrate to (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output graph file (required)")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runMigrate(rootOpts *RootOptions, path, schemaPath, output string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	g, err := readGraph(path)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "migrate failed", err)
	}
	schema, err := schemafile.Load(schemaPath)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "loading schema", err)
	}

	nodesBefore, edgesBefore := g.NodeCount(), g.EdgeCount()
	out.VerboseLog("migrating %d nodes and %d edges from %s to %s",
		nodesBefore, edgesBefore, g.Schema().Name(), schema.Name())

	migrated, err := generic.Migrate(g, schema)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitFailure, "migrate failed", err)
	}

	if err := writeGraph(output, migrated); err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "migrate failed", err)
	}

	return out.Success(MigrateResult{
		Schema:       schema.Name(),
		Output:       output,
		Nodes:        migrated.NodeCount(),
		Edges:        migrated.EdgeCount(),
		DroppedNodes: nodesBefore - migrated.NodeCount(),
		DroppedEdges: edgesBefore - migrated.EdgeCount(),
	})
}
