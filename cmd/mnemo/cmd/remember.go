package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

func newRememberCmd() *cobra.Command {
	var (
		memType      string
		tags         []string
		importance   float64
		source       string
		privacyScope string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "remember <content>",
		Short: "Store a new memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			in := tools.RememberInput{
				Content:      content,
				Type:         memType,
				Tags:         tags,
				Source:       source,
				PrivacyScope: privacyScope,
			}
			if cmd.Flags().Changed("importance") {
				in.Importance = &importance
			}
			return runRemember(cmd, in, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&memType, "type", "episodic", "Memory type: working, episodic, semantic, procedural")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().Float64Var(&importance, "importance", 0, "Importance in [0,1] (defaults by type if unset)")
	cmd.Flags().StringVar(&source, "source", "", "Free-form provenance label")
	cmd.Flags().StringVar(&privacyScope, "privacy-scope", "private", "Privacy scope: private, team, public")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runRemember(cmd *cobra.Command, in tools.RememberInput, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Surface.Remember(cmd.Context(), in)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "remembered %s\n", out.MemoryID)
	return nil
}
