package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// InspectResult summarizes a graph file.
type InspectResult struct {
	Schema    string     `json:"schema"`
	NodeCount int        `json:"node_count"`
	EdgeCount int        `json:"edge_count"`
	Nodes     []NodeInfo `json:"nodes,omitempty"`
}

// NodeInfo describes one node and its outgoing edges in order.
type NodeInfo struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Outgoing []EdgeInfo `json:"outgoing,omitempty"`
}

// EdgeInfo describes one outgoing edge.
type EdgeInfo struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Target string `json:"target"`
}

func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema: %s\nnodes: %d\nedges: %d\n", r.Schema, r.NodeCount, r.EdgeCount)
	for _, n := range r.Nodes {
		fmt.Fprintf(&b, "%s (%s)\n", n.ID, n.Type)
		for _, e := range n.Outgoing {
			fmt.Fprintf(&b, "  -[%s: %s]-> %s\n", e.ID, e.Type, e.Target)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "inspect <graph-file>",
		Short: "Show a graph file's schema and contents",
		Long: `Show a graph file's schema name and entity counts.

With --full, every node is listed with its outgoing edges in their
stored order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], full, cmd)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "list every node with its outgoing edges")
	return cmd
}

func runInspect(rootOpts *RootOptions, path string, full bool, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	g, err := readGraph(path)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitCommandError, "inspect failed", err)
	}

	result := InspectResult{
		Schema:    g.Schema().Name(),
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
	}
	if full {
		for _, id := range g.NodeIDs() {
			n, err := g.Node(id)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "inspect failed", err)
			}
			info := NodeInfo{ID: n.ID, Type: n.Type}
			refs, err := g.Outgoing(id)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "inspect failed", err)
			}
			for _, ref := range refs {
				info.Outgoing = append(info.Outgoing, EdgeInfo{
					ID:     ref.Weight.ID,
					Type:   ref.Weight.Type,
					Target: ref.Target(),
				})
			}
			result.Nodes = append(result.Nodes, info)
		}
	}

	return out.Success(result)
}
