package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/config"
)

// checkResult is one diagnostic check's outcome.
type checkResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail"`
	Warning bool   `json:"warning"`
}

func newDoctorCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that mnemo can start and store memories",
		Long: `Run diagnostics to ensure mnemo can operate correctly:
  - config file parses (if --config was given)
  - store directory is writable
  - embeddings provider is configured validly`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runDoctor(cmd *cobra.Command, jsonOutput bool) error {
	var results []checkResult

	cfg, err := loadConfig()
	if err != nil {
		results = append(results, checkResult{Name: "config", OK: false, Detail: err.Error()})
	} else {
		results = append(results, checkResult{Name: "config", OK: true, Detail: "loaded"})
		results = append(results, checkStorePath(cfg))
		results = append(results, checkEmbeddings(cfg))
	}

	critical := false
	for _, r := range results {
		if !r.OK && !r.Warning {
			critical = true
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			status := "ok"
			if !r.OK {
				status = "fail"
				if r.Warning {
					status = "warn"
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-12s %s\n", status, r.Name, r.Detail)
		}
	}

	if critical {
		return fmt.Errorf("doctor found critical issues")
	}
	return nil
}

func checkStorePath(cfg *config.Config) checkResult {
	dir := filepath.Dir(cfg.Store.Path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return checkResult{Name: "store_path", OK: false, Detail: err.Error()}
	}
	probe := filepath.Join(dir, ".mnemo-write-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return checkResult{Name: "store_path", OK: false, Detail: fmt.Sprintf("%s is not writable: %v", dir, err)}
	}
	os.Remove(probe)
	return checkResult{Name: "store_path", OK: true, Detail: fmt.Sprintf("%s is writable", dir)}
}

func checkEmbeddings(cfg *config.Config) checkResult {
	switch cfg.Embeddings.Provider {
	case "external":
		if cfg.Embeddings.Endpoint == "" {
			return checkResult{Name: "embeddings", OK: false, Warning: true, Detail: "provider=external but no endpoint configured, falling back to lexical"}
		}
		return checkResult{Name: "embeddings", OK: true, Detail: fmt.Sprintf("external at %s", cfg.Embeddings.Endpoint)}
	case "lexical":
		return checkResult{Name: "embeddings", OK: true, Detail: "lexical (offline, deterministic)"}
	case "disabled":
		return checkResult{Name: "embeddings", OK: true, Warning: true, Detail: "embeddings disabled, recall will be text-only"}
	default:
		return checkResult{Name: "embeddings", OK: false, Detail: fmt.Sprintf("unknown provider %q", cfg.Embeddings.Provider)}
	}
}
