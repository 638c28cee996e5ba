package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivoronin/mediasweep/internal/model"
)

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <plan-file> <file-id>",
		Short: "Flip a file's action between automatic and user override",
		Long: `Loads a plan file, toggles the effective action for one file id (keep
becomes delete, delete becomes keep), and writes the plan back in place.
KeepAndRename actions cannot be toggled — they are structural, not a
preference.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runToggle(args[0], model.FileID(args[1]))
		},
	}
	return cmd
}

func runToggle(planFile string, id model.FileID) error {
	f, err := os.Open(planFile)
	if err != nil {
		return fmt.Errorf("open plan: %w", err)
	}
	var doc model.PlanDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		_ = f.Close()
		return fmt.Errorf("decode plan: %w", err)
	}
	_ = f.Close()

	result := model.FromDocument(doc)
	action, err := result.ToggleOverride(id)
	if err != nil {
		return fmt.Errorf("toggle %s: %w", id, err)
	}

	out, err := os.Create(planFile)
	if err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	defer func() { _ = out.Close() }()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.ToDocument(doc.Root)); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	fmt.Printf("%s is now: %s (%s)\n", id, actionLabel(action), action.Reason)
	return nil
}
