package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

func newPinCmd() *cobra.Command {
	var unpin bool
	var confirm bool
	var reason string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "pin <id> [id...]",
		Short: "Pin or unpin one or more memories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := tools.PinInput{Reason: reason, Confirm: confirm}
			if len(args) == 1 {
				in.ID = args[0]
			} else {
				in.Batch = args
			}
			return runPin(cmd, in, unpin, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&unpin, "unpin", false, "Unpin instead of pin")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm unpinning a high-importance memory")
	cmd.Flags().StringVar(&reason, "reason", "", "Free-form reason recorded with the pin/unpin")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runPin(cmd *cobra.Command, in tools.PinInput, unpin, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	var out *tools.PinOutput
	if unpin {
		out, err = a.Surface.Unpin(cmd.Context(), in)
	} else {
		out, err = a.Surface.Pin(cmd.Context(), in)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, r := range out.Results {
		if r.Success {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  ok\n", r.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  error: %s\n", r.ID, r.Error)
		}
	}
	return nil
}
