package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dharif23/ncprep/clip"
	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
)

// ClipMain is wrapped by NewClipCommand and only exported for testing purposes.
var ClipMain *clip.Main

// NewClipCommand returns a new cobra command wrapping ClipMain.
func NewClipCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ClipMain = clip.NewMain()
	clipCommand := &cobra.Command{
		Use:   "clip",
		Short: "keep the rows of an edge list inside a window of days",
		Long: `Keeps the rows whose Unix timestamp falls on one of interval days
starting at start-date (UTC), and writes them to <input>_clipped.<ext>.
Input format: source target weight timestamp.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireFlags(cmd.Flags(), "input", "start-date", "interval")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ClipMain.SetLogger(logger)
			res, err := ClipMain.Clip()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, res.Output)
			logger.Printf("Done: %s", time.Since(start))
			return nil
		},
	}
	flags := clipCommand.Flags()
	err := commandeer.Flags(flags, ClipMain)
	if err != nil {
		panic(err)
	}
	return clipCommand
}

func init() {
	subcommandFns["clip"] = NewClipCommand
}
