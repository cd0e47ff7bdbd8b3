package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

func newRecallCmd() *cobra.Command {
	var (
		limit      int
		memType    string
		tags       []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: "Search memories by hybrid relevance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			in := tools.RecallInput{Query: query, Limit: limit}
			if memType != "" || len(tags) > 0 {
				filter := &tools.RecallFilter{Tags: tags}
				if memType != "" {
					filter.Type = []string{memType}
				}
				in.Filters = filter
			}
			return runRecall(cmd, in, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().StringVar(&memType, "type", "", "Filter by memory type")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Filter by tag (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runRecall(cmd *cobra.Command, in tools.RecallInput, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Surface.Recall(cmd.Context(), in)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(out.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no memories found")
		return nil
	}
	for _, item := range out.Items {
		fmt.Fprintf(cmd.OutOrStdout(), "%.3f  %s  %s\n", item.Score, item.MemoryID, item.Content)
	}
	return nil
}
