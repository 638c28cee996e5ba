package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ivoronin/mediasweep/internal/model"
	"github.com/ivoronin/mediasweep/internal/pipeline"
	"github.com/ivoronin/mediasweep/internal/progress"
)

type scanOptions struct {
	workers    int
	noProgress bool
	outFile    string
	jsonOut    bool
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{workers: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory for duplicate and redundant media",
		Long: `Walks a directory of photos and videos, fingerprints every file, and
produces a cleaning plan grouped by content duplicates, Live Photo pairs
needing repair, redundant size variants, and perfectly paired Live Photos.

Use --out to save the plan to a file for later review with 'mediasweep
execute'. Nothing on disk is modified by scan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScan(args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "Number of parallel workers")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "Write the plan to this file for 'mediasweep execute'")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the plan as JSON instead of a table")

	return cmd
}

func runScan(dir string, opts *scanOptions) error {
	showProgress := !opts.noProgress

	errs := make(chan error, 100)
	go drainErrors(errs)
	defer close(errs)

	bar := progress.NewBar(showProgress)
	cancel := &model.CancelSignal{}

	result, err := pipeline.Scan(dir, cancel, pipeline.Options{
		Workers: opts.workers,
		Sink:    bar.Observe,
		ErrCh:   errs,
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	bar.Finish(fmt.Sprintf("scanned %s", dir))

	if opts.outFile != "" {
		doc := result.ToDocument(dir)
		f, err := os.Create(opts.outFile)
		if err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		defer func() { _ = f.Close() }()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
	}

	if opts.jsonOut {
		return printJSON(result, dir)
	}
	printTable(result)
	return nil
}

func printJSON(result *model.ScanResult, dir string) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.ToDocument(dir))
}

func printTable(result *model.ScanResult) {
	for _, g := range result.Groups {
		fmt.Printf("\n%s\n", g.GroupName)
		for _, f := range g.Files {
			fmt.Printf("  [%s] %s (%s): %s\n", actionLabel(f.Action), f.Path.String(), humanize.IBytes(f.Size), f.Action.Reason)
		}
	}
	fmt.Printf("\nReclaimable: %s\n", humanize.IBytes(result.ReclaimableBytes()))
}

func actionLabel(a model.Action) string {
	switch a.Kind {
	case model.ActionDelete, model.ActionUserDelete:
		return "delete"
	case model.ActionKeepAndRename:
		return fmt.Sprintf("rename -> %s", a.NewStem)
	default:
		return "keep"
	}
}
