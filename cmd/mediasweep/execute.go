package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivoronin/mediasweep/internal/model"
	"github.com/ivoronin/mediasweep/internal/pipeline"
)

type executeOptions struct {
	dryRun bool
}

func newExecuteCmd() *cobra.Command {
	opts := &executeOptions{}

	cmd := &cobra.Command{
		Use:   "execute <plan-file>",
		Short: "Apply a plan produced by 'mediasweep scan --out'",
		Long: `Reads a plan file and applies its effective actions to disk: deletes
run first, then renames, so a rename's destination can land on a path a
sibling delete just freed up.

Use --dry-run to preview what execute would do without touching the
filesystem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExecute(args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Preview without modifying files")

	return cmd
}

func runExecute(planFile string, opts *executeOptions) error {
	f, err := os.Open(planFile)
	if err != nil {
		return fmt.Errorf("open plan: %w", err)
	}
	defer func() { _ = f.Close() }()

	var doc model.PlanDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	result := model.FromDocument(doc)

	errs := make(chan error, 100)
	go drainErrors(errs)
	defer close(errs)

	cancel := &model.CancelSignal{}
	report := pipeline.Execute(result, opts.dryRun, cancel, errs)

	printReport(report, opts.dryRun)
	return nil
}

func printReport(report model.ExecutionReport, dryRun bool) {
	verb := "Would have"
	if !dryRun {
		verb = "Did"
	}
	fmt.Printf("%s delete %d file(s) (%d failed)\n", verb, report.DeletedOK, report.DeletedFailed)
	fmt.Printf("%s rename %d file(s) (%d failed)\n", verb, report.RenamedOK, report.RenamedFailed)
	for _, f := range report.Failures {
		fmt.Printf("  %s %s: %v\n", f.Op, f.Path, f.Err)
	}
}
