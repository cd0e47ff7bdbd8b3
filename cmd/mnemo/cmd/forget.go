package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

func newForgetCmd() *cobra.Command {
	var hard bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "forget <id>",
		Short: "Soft- or hard-delete a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForget(cmd, tools.ForgetInput{ID: args[0], Hard: hard}, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "Hard-delete instead of soft-delete (rejected for pinned memories)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runForget(cmd *cobra.Command, in tools.ForgetInput, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Surface.Forget(cmd.Context(), in)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", out.ID, out.Status)
	return nil
}
