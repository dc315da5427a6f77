package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/discovery"
	"github.com/schemaforge/schemaforge/internal/manifest"
	"github.com/schemaforge/schemaforge/internal/scaffold"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <name> <description> [version] [entity]",
	Short: "Create a new schema module from the template set",
	Long: `Scaffold a new schema module: validate the name, render the template
set with name-case transforms, and write the module under the schema root.
On success all workspace manifests are synchronized immediately, so no
manual sync step is needed.

The module name must be lowercase kebab-case. Version defaults to v1 and
the entity name defaults to the TitleCase form of the module name.

Examples:
  schemaforge scaffold billing "Billing service"
  schemaforge scaffold billing "Billing service" v1 Subscription`,
	Args: cobra.RangeArgs(2, 4),
	RunE: runScaffold,
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	opts := scaffold.Options{Name: args[0], Description: args[1]}
	if len(args) > 2 {
		opts.Version = args[2]
	}
	if len(args) > 3 {
		opts.Entity = args[3]
	}

	scaffolder := scaffold.NewScaffolder(cfg.SchemaRoot, cfg.ReservedNames, logger)
	if cfg.TemplateDir != "" {
		if err := scaffolder.LoadTemplateDir(cfg.TemplateDir); err != nil {
			return err
		}
	}

	path, err := scaffolder.Scaffold(opts)
	if err != nil {
		return err
	}
	fmt.Printf("Created module at %s\n", path)

	// Reflect the new module in every workspace manifest right away.
	scanner := discovery.NewScanner(cfg.ReservedNames, logger)
	modules, err := scanner.Discover(cfg.SchemaRoot)
	if err != nil {
		return err
	}

	synchronizer := manifest.NewSynchronizer(false, logger)
	outcomes := synchronizer.SyncAll(cfg.Ecosystems, modules)

	var failed int
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			continue
		}
		fmt.Printf("%s: %s\n", outcome.Ecosystem, outcome.Result)
	}
	if failed > 0 {
		return fmt.Errorf("module created but sync failed for %d ecosystems", failed)
	}
	return nil
}
