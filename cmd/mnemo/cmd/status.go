package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/queue"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// statusInfo is what `mnemo status` reports. It shares only store_connected
// with the HTTP transport's GET /health payload; the other fields are counts
// and queue/alert state read from the local store and services.
type statusInfo struct {
	StoreConnected bool        `json:"store_connected"`
	MemoryCount    int         `json:"memory_count"`
	PinnedCount    int         `json:"pinned_count"`
	QueueStats     queue.Stats `json:"queue_stats"`
	ActiveAlerts   int         `json:"active_alerts"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store health and queue/alert status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runStatus(ctx context.Context, cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, nil)
	if err != nil {
		return fmt.Errorf("connecting to store: %w", err)
	}
	defer a.Close()

	info := statusInfo{StoreConnected: a.store.Checkpoint(ctx) == nil}

	memories, err := a.store.ListMemories(ctx, store.Filter{})
	if err == nil {
		info.MemoryCount = len(memories)
		for _, m := range memories {
			if m.Pinned {
				info.PinnedCount++
			}
		}
	}

	info.QueueStats = a.Tasks.Stats()
	info.ActiveAlerts = len(a.Surface.Alerts.Active())

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Store connected: %v\n", info.StoreConnected)
	fmt.Fprintf(cmd.OutOrStdout(), "Memories:        %d (pinned: %d)\n", info.MemoryCount, info.PinnedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Queue depth:     %d (in flight: %d, failed: %d)\n", info.QueueStats.QueueDepth, info.QueueStats.InFlight, info.QueueStats.Failed)
	fmt.Fprintf(cmd.OutOrStdout(), "Active alerts:   %d\n", info.ActiveAlerts)
	return nil
}
