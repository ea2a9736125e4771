package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewVersionCommand returns a command printing the version and build time.
func NewVersionCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version of ncprep",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "ncprep %s, built %s\n", Version, BuildTime)
		},
	}
}

func init() {
	subcommandFns["version"] = NewVersionCommand
}
