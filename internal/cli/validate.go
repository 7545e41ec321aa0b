package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/build-aau/typed-graph/generic"
	"github.com/build-aau/typed-graph/schemafile"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Schema string   `json:"schema"`
	Errors []string `json:"errors,omitempty"`
}

func (r ValidationResult) String() string {
	if r.Valid {
		return fmt.Sprintf("valid under %s", r.Schema)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid under %s:\n", r.Schema)
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate <graph-file>",
		Short: "Validate a graph file against a schema",
		Long: `Validate a graph file.

Without --schema the file is checked against its embedded schema, which
happens implicitly while loading. With --schema every node and edge is
replayed against the given CUE schema instead, and all rejections are
reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], schemaPath, cmd)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "CUE schema file to validate against")
	return cmd
}

func runValidate(rootOpts *RootOptions, path, schemaPath string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	g, err := readGraph(path)
	if err != nil {
		out.Error(err.Error())
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	schema := g.Schema()
	if schemaPath != "" {
		schema, err = schemafile.Load(schemaPath)
		if err != nil {
			out.Error(err.Error())
			return WrapExitError(ExitCommandError, "loading schema", err)
		}
	}

	result := ValidationResult{Schema: schema.Name(), Errors: replayErrors(g, schema)}
	result.Valid = len(result.Errors) == 0

	if err := out.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return WrapExitError(ExitFailure, "validation failed",
			fmt.Errorf("%d entities rejected", len(result.Errors)))
	}
	return nil
}

// replayErrors rebuilds g under schema and collects every rejection. An
// edge whose endpoint was already rejected is skipped rather than
// reported twice.
func replayErrors(g *generic.StringGraph, schema generic.StringSchema) []string {
	var errs []string
	checked := generic.NewStringGraph(schema)

	for _, n := range g.Nodes() {
		if _, err := checked.AddNode(n); err != nil {
			errs = append(errs, fmt.Sprintf("node %s: %v", n.ID, err))
		}
	}

	for _, id := range g.NodeIDs() {
		refs, err := g.Outgoing(id)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		for _, ref := range refs {
			if !checked.HasNode(ref.Source()) || !checked.HasNode(ref.Target()) {
				continue
			}
			if _, err := checked.AddEdge(ref.Source(), ref.Target(), ref.Weight); err != nil {
				errs = append(errs, fmt.Sprintf("edge %s: %v", ref.Weight.ID, err))
			}
		}
	}
	return errs
}
