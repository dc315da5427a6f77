package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// addFormatFlag registers the shared --format flag. The first supported
// format is the default.
func addFormatFlag(flags *pflag.FlagSet, target *string, supported ...string) {
	flags.StringVarP(target, "format", "f", supported[0],
		fmt.Sprintf("Output format (%s)", strings.Join(supported, ", ")))
}

func unsupportedFormat(format string, supported ...string) error {
	return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(supported, ", "))
}
