package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/build-aau/typed-graph/sqlitestore"
)

// SnapshotSaveResult reports a stored snapshot.
type SnapshotSaveResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

func (r SnapshotSaveResult) String() string {
	return fmt.Sprintf("saved %s as %s (%d nodes, %d edges)", r.Name, r.ID, r.Nodes, r.Edges)
}

// SnapshotListResult lists stored snapshots.
type SnapshotListResult struct {
	Snapshots []sqlitestore.Info `json:"snapshots"`
}

func (r SnapshotListResult) String() string {
	if len(r.Snapshots) == 0 {
		return "no snapshots"
	}
	var b strings.Builder
	for _, info := range r.Snapshots {
		fmt.Fprintf(&b, "%s  %s  %s  %d nodes, %d edges\n",
			info.ID, info.CreatedAt.Format("2006-01-02 15:04:05"), info.Name, info.NodeCount, info.EdgeCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore graph snapshots in a SQLite database",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "graphs.db", "snapshot database path")

	cmd.AddCommand(newSnapshotSaveCommand(rootOpts, &dbPath))
	cmd.AddCommand(newSnapshotLoadCommand(rootOpts, &dbPath))
	cmd.AddCommand(newSnapshotListCommand(rootOpts, &dbPath))
	cmd.AddCommand(newSnapshotDeleteCommand(rootOpts, &dbPath))
	return cmd
}

func newSnapshotSaveCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:           "save <graph-file>",
		Short:         "Store a graph file as a snapshot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)
			g, err := readGraph(args[0])
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot save failed", err)
			}

			store, err := sqlitestore.Open(*dbPath)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot save failed", err)
			}
			defer store.Close()

			if name == "" {
				name = args[0]
			}
			id, err := store.Save(cmd.Context(), name, g)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot save failed", err)
			}
			return out.Success(SnapshotSaveResult{
				ID:    id,
				Name:  name,
				Nodes: g.NodeCount(),
				Edges: g.EdgeCount(),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "snapshot name (defaults to the file path)")
	return cmd
}

func newSnapshotLoadCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "load <snapshot-id>",
		Short:         "Restore a snapshot into a graph file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)
			store, err := sqlitestore.Open(*dbPath)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot load failed", err)
			}
			defer store.Close()

			g, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot load failed", err)
			}
			if err := writeGraph(output, g); err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot load failed", err)
			}
			return out.Success(ConvertResult{
				Input:  args[0],
				Output: output,
				Nodes:  g.NodeCount(),
				Edges:  g.EdgeCount(),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output graph file (required)")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newSnapshotListCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored snapshots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)
			store, err := sqlitestore.Open(*dbPath)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot list failed", err)
			}
			defer store.Close()

			infos, err := store.List(cmd.Context())
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot list failed", err)
			}
			return out.Success(SnapshotListResult{Snapshots: infos})
		},
	}
}

func newSnapshotDeleteCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <snapshot-id>",
		Short:         "Delete a stored snapshot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)
			store, err := sqlitestore.Open(*dbPath)
			if err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot delete failed", err)
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				out.Error(err.Error())
				return WrapExitError(ExitCommandError, "snapshot delete failed", err)
			}
			return out.Success(fmt.Sprintf("deleted %s", args[0]))
		},
	}
}

func formatter(rootOpts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
}
