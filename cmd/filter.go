package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dharif23/ncprep/filter"
	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
)

// FilterMain is wrapped by NewFilterCommand and only exported for testing
// purposes.
var FilterMain *filter.Main

// NewFilterCommand returns a new cobra command wrapping FilterMain.
func NewFilterCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	FilterMain = filter.NewMain()
	filterCommand := &cobra.Command{
		Use:   "filter",
		Short: "write selected columns of a text file to a new file",
		Long: `Writes the columns given by 1-based index, in the order given, to the
output file, separated by single spaces. awk does the work when it is
installed.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireFlags(cmd.Flags(), "input", "columns")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			FilterMain.SetLogger(logger)
			res, err := FilterMain.Filter()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, res.Output)
			logger.Printf("Done: %s", time.Since(start))
			return nil
		},
	}
	flags := filterCommand.Flags()
	err := commandeer.Flags(flags, FilterMain)
	if err != nil {
		panic(err)
	}
	return filterCommand
}

func init() {
	subcommandFns["filter"] = NewFilterCommand
}
