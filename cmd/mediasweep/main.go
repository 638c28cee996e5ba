package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:     "mediasweep",
		Short:   "Find duplicate and redundant photo/video media and plan cleanup",
		Version: version + " (" + commit + ")",
	}

	root.AddCommand(newScanCmd())
	root.AddCommand(newExecuteCmd())
	root.AddCommand(newToggleCmd())

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// drainErrors consumes non-fatal errors from a channel and writes them to
// stderr, clearing the progress bar line first to avoid visual collision
// with its carriage-return redraws.
func drainErrors(errs <-chan error) {
	for err := range errs {
		os.Stderr.WriteString("\r\033[Kerror: " + err.Error() + "\n")
	}
}
