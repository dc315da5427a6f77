package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge/internal/discovery"
)

var discoverFormat string

var discoverCmd = &cobra.Command{
	Use:     "discover",
	Aliases: []string{"d"},
	Short:   "List the schema modules currently defined",
	Long: `Scan the schema root and list every module directory, excluding hidden
entries and reserved infrastructure names. The result is sorted.

Examples:
  schemaforge discover              # One module per line
  schemaforge discover -f json      # Output as JSON
  schemaforge discover -f yaml      # Output as YAML`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	addFormatFlag(discoverCmd.Flags(), &discoverFormat, "text", "json", "yaml")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner(cfg.ReservedNames, logger)
	modules, err := scanner.Discover(cfg.SchemaRoot)
	if err != nil {
		return err
	}

	switch discoverFormat {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(struct {
			Modules discovery.ModuleSet `json:"modules"`
		}{modules})
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(struct {
			Modules discovery.ModuleSet `yaml:"modules"`
		}{modules})
	case "text":
		if len(modules) == 0 {
			fmt.Println("No modules found.")
			return nil
		}
		for _, module := range modules {
			fmt.Println(module)
		}
		return nil
	default:
		return unsupportedFormat(discoverFormat, "text", "json", "yaml")
	}
}
