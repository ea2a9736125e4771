package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dharif23/ncprep/mapper"
	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
)

// MapMain is wrapped by NewMapCommand and only exported for testing purposes.
var MapMain *mapper.Main

// NewMapCommand returns a new cobra command wrapping MapMain.
func NewMapCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	MapMain = mapper.NewMain()
	mapCommand := &cobra.Command{
		Use:   "map",
		Short: "replace source and target labels with dense integer ids",
		Long: `Maps every distinct source and target label of an edge list to an
integer id, drops rows with empty or short labels, optionally compresses
weights to ln(1+w), and writes <input>_numeric.txt next to the input.
Input format: source target [weight] [timestamp].`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireFlags(cmd.Flags(), "input", "weighted")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			MapMain.SetLogger(logger)
			res, err := MapMain.Map()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, res.Output)
			logger.Printf("Done: %s", time.Since(start))
			return nil
		},
	}
	flags := mapCommand.Flags()
	err := commandeer.Flags(flags, MapMain)
	if err != nil {
		panic(err)
	}
	return mapCommand
}

func init() {
	subcommandFns["map"] = NewMapCommand
}
