package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge/internal/discovery"
	sferrors "github.com/schemaforge/schemaforge/internal/errors"
	"github.com/schemaforge/schemaforge/internal/structure"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate client trees against the discovered module set",
	Long: `Cross-reference every ecosystem's client directory tree with the current
schema modules. Each expected client entry is classified as ok, missing, or
orphaned.

Missing entries fail the command: a module has no client directory or the
directory lacks the ecosystem's metadata file. Orphaned directories are
warnings only; they may be legitimate generated artifacts, and cleanup is
left to the operator.

Examples:
  schemaforge validate              # Human-readable report
  schemaforge validate -f json      # Machine-readable report`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addFormatFlag(validateCmd.Flags(), &validateFormat, "text", "json", "yaml")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(cfg.ReservedNames, logger)
	modules, err := scanner.Discover(cfg.SchemaRoot)
	if err != nil {
		return err
	}

	validator := structure.NewValidator(logger)
	report := validator.Validate(modules, cfg.Ecosystems)

	if err := printReport(&report); err != nil {
		return err
	}

	if report.HasMissing() {
		return &sferrors.StructureError{Missing: len(report.Missing)}
	}
	return nil
}

func printReport(report *structure.Report) error {
	switch validateFormat {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(report)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(report)
	case "text":
		fmt.Printf("%d client entries ok\n", len(report.OK))
		for _, entry := range report.Missing {
			fmt.Printf("missing: %s/%s (%s)\n", entry.Ecosystem, entry.Module, entry.Reason)
		}
		for _, entry := range report.Orphaned {
			fmt.Fprintf(os.Stderr, "warning: orphaned directory %s in %s client tree (%s)\n",
				entry.Path, entry.Ecosystem, entry.Reason)
		}
		return nil
	default:
		return unsupportedFormat(validateFormat, "text", "json", "yaml")
	}
}
