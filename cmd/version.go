package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/version"
)

var versionFormat string

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	addFormatFlag(versionCmd.Flags(), &versionFormat, "text", "json")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	switch versionFormat {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(info)
	case "text":
		fmt.Printf("schemaforge %s (%s, built %s, %s, %s)\n",
			info.Version, info.Commit, info.Date, info.GoVersion, info.Platform)
		return nil
	default:
		return unsupportedFormat(versionFormat, "text", "json")
	}
}
