package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mvbench/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	List   bool
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Export persisted results as CSV",
		Long: `Export a persisted benchmark run as CSV, or list stored runs.

Examples:
  mvbench export --db results.db --list
  mvbench export --db results.db 0d9f7c1a-... -o run.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored runs instead of exporting")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write CSV to a file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, args []string, cmd *cobra.Command) error {
	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required for export")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if opts.List {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		if opts.Format == "json" {
			f := &OutputFormatter{Format: opts.Format, Writer: out}
			return f.JSON(runs)
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %s  %d rows\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.PlanName, r.Rows)
		}
		return nil
	}

	if len(args) != 1 {
		return NewExitError(ExitCommandError, "a run ID is required unless --list is given")
	}
	runID := args[0]

	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		out = f
	}

	if err := st.ExportCSV(ctx, out, runID); err != nil {
		return WrapExitError(ExitCommandError, "failed to export run", err)
	}
	return nil
}
