package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConvertResult reports a completed conversion.
type ConvertResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}

func (r ConvertResult) String() string {
	return fmt.Sprintf("wrote %s (%d nodes, %d edges)", r.Output, r.Nodes, r.Edges)
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input-file> <output-file>",
		Short: "Convert a graph file between JSON and YAML",
		Long: `Convert a graph file between interchange codecs.

Both codecs carry the same record: schema, nodes, and edges in
outgoing-adjacency order, so conversion is lossless in both directions.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runConvert(rootOpts *RootOptions, input, output string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	g, err := readGraph(input)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "convert failed", err)
	}
	if err := writeGraph(output, g); err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "convert failed", err)
	}

	return out.Success(ConvertResult{
		Input:  input,
		Output: output,
		Nodes:  g.NodeCount(),
		Edges:  g.EdgeCount(),
	})
}
