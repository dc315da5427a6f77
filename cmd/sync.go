package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/config"
	"github.com/schemaforge/schemaforge/internal/discovery"
	"github.com/schemaforge/schemaforge/internal/manifest"
)

var (
	syncCheck      bool
	syncEcosystems []string
	syncFormat     string
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Synchronize every ecosystem's workspace manifest",
	Long: `Reconcile each ecosystem's workspace manifest against the discovered
module set. Only the members section of each manifest is rewritten; all other
content is preserved byte for byte. A failure in one ecosystem never aborts
the others.

Examples:
  schemaforge sync                  # Reconcile all five manifests
  schemaforge sync --check          # Report drift without writing (CI)
  schemaforge sync -e rust -e java  # Only selected ecosystems`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncCheck, "check", false, "Detect drift without writing manifests")
	syncCmd.Flags().StringSliceVarP(&syncEcosystems, "ecosystem", "e", nil, "Restrict to named ecosystems (repeatable)")
	addFormatFlag(syncCmd.Flags(), &syncFormat, "text", "json")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ecosystems, err := selectEcosystems(cfg, syncEcosystems)
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(cfg.ReservedNames, logger)
	modules, err := scanner.Discover(cfg.SchemaRoot)
	if err != nil {
		return err
	}

	synchronizer := manifest.NewSynchronizer(syncCheck, logger)
	outcomes := synchronizer.SyncAll(ecosystems, modules)

	if err := printOutcomes(outcomes); err != nil {
		return err
	}

	var failed, changed int
	for _, outcome := range outcomes {
		switch outcome.Result {
		case manifest.ResultError:
			failed++
		case manifest.ResultChanged:
			changed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("sync failed for %d of %d ecosystems", failed, len(outcomes))
	}
	if syncCheck && changed > 0 {
		return fmt.Errorf("manifest drift detected in %d ecosystems; run 'schemaforge sync' to fix", changed)
	}
	return nil
}

func selectEcosystems(cfg *config.Config, names []string) ([]manifest.Ecosystem, error) {
	if len(names) == 0 {
		return cfg.Ecosystems, nil
	}
	selected := make([]manifest.Ecosystem, 0, len(names))
	for _, name := range names {
		eco, ok := cfg.Ecosystem(name)
		if !ok {
			return nil, fmt.Errorf("unknown ecosystem %q", name)
		}
		selected = append(selected, eco)
	}
	return selected, nil
}

func printOutcomes(outcomes []manifest.Outcome) error {
	switch syncFormat {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(outcomes)
	case "text":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ECOSYSTEM\tMANIFEST\tRESULT")
		for _, outcome := range outcomes {
			result := string(outcome.Result)
			if outcome.Err != nil {
				result = "error: " + outcome.Err.Error()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", outcome.Ecosystem, outcome.Manifest, result)
		}
		return w.Flush()
	default:
		return unsupportedFormat(syncFormat, "text", "json")
	}
}
