// Package clip keeps the rows of a timestamped edge list which fall inside a
// window of calendar days.
package clip

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/edgelist"
	"github.com/dharif23/ncprep/sanity"
	"github.com/pkg/errors"
)

// OutputSuffix is inserted before the input's extension to name the output.
const OutputSuffix = "_clipped"

// NumColumns is the fixed width of a clippable edge list: source, target,
// weight and timestamp.
const NumColumns = 4

// Main contains the configuration for one clipping run.
type Main struct {
	Input     string `help:"Input file path. E.g. /home/user/data/input/file_name.txt"`
	Delimiter string `help:"Separator for the input and output file, e.g. , or tab. Default is whitespace."`
	StartDate string `flag:"start-date" help:"Start date for clipping the file (YYYY-MM-DD)."`
	Interval  int    `help:"Number of days to keep, counting the start date."`
	Manifest  string `help:"Path of a YAML manifest describing the run. Empty means none."`

	log ncprep.Logger
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{log: ncprep.NopLogger{}}
}

// SetLogger sets the logger used by Run.
func (m *Main) SetLogger(l ncprep.Logger) {
	m.log = l
}

// Result describes a successful run.
type Result struct {
	Output  string
	Window  Window
	Read    int
	Kept    int
	Digest  uint64
	Verdict *sanity.Verdict
}

// Run clips the input file. It satisfies commandeer's Runner.
func (m *Main) Run() error {
	_, err := m.Clip()
	return err
}

// Clip writes the rows of the input whose timestamp falls inside the window
// to <input stem>_clipped.<ext>, in input order.
func (m *Main) Clip() (*Result, error) {
	if m.log == nil {
		m.log = ncprep.NopLogger{}
	}
	started := time.Now()
	window, err := NewWindow(m.StartDate, m.Interval)
	if err != nil {
		return nil, err
	}
	delimiter := ncprep.NormalizeDelimiter(m.Delimiter)

	verdict := sanity.Check(sanity.Options{
		Input:          m.Input,
		Delimiter:      delimiter,
		RequireColumns: NumColumns,
	}, m.log)
	if err := verdict.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Output:  ncprep.DerivedPath(m.Input, OutputSuffix, ""),
		Window:  window,
		Verdict: verdict,
	}
	m.log.Printf("Loading input dataset.....")
	rows, err := edgelist.NewSource(
		edgelist.WithPath(m.Input),
		edgelist.WithDelimiter(delimiter),
		edgelist.WithColumns(NumColumns),
	).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "loading input dataset")
	}
	res.Read = len(rows)

	m.log.Printf("Clipping %s.....", window)
	kept := make([]edgelist.Row, 0, len(rows))
	for _, row := range rows {
		if row.Len() < NumColumns {
			return nil, ncprep.E(ncprep.DataLoadFailure, fmt.Sprintf("reading line %d", row.Line), m.Input,
				errors.Errorf("want %d columns, got %d", NumColumns, row.Len()))
		}
		ts, err := parseTimestamp(row.Field(3))
		if err != nil {
			return nil, ncprep.E(ncprep.DataLoadFailure, fmt.Sprintf("reading line %d", row.Line), m.Input, err)
		}
		if window.Contains(ts) {
			kept = append(kept, row)
		}
	}
	res.Kept = len(kept)
	m.log.Printf("Kept %d of %d rows", res.Kept, res.Read)

	res.Digest, err = m.write(res.Output, kept, delimiter)
	if err != nil {
		return nil, err
	}
	if m.Manifest != "" {
		man := &ncprep.Manifest{
			Transform: "clip",
			Input:     m.Input,
			Output:    res.Output,
			Started:   started.UTC(),
			Duration:  time.Since(started).String(),
			Checks:    verdict.ManifestChecks(),
			Counts:    map[string]int{"read": res.Read, "written": res.Kept},
			Digest:    ncprep.FormatDigest(res.Digest),
		}
		if err := man.WriteFile(m.Manifest); err != nil {
			return nil, errors.Wrap(err, "writing manifest")
		}
	}
	return res, nil
}

func (m *Main) write(path string, rows []edgelist.Row, delimiter string) (uint64, error) {
	m.log.Printf("Creating output file.....")
	if delimiter == "" {
		delimiter = ncprep.DefaultDelimiter
	}
	out, err := ncprep.CreateAtomic(path)
	if err != nil {
		return 0, err
	}
	defer out.Abort()
	for _, row := range rows {
		if _, err := out.WriteString(strings.Join(row.Fields[:NumColumns], delimiter) + "\n"); err != nil {
			return 0, ncprep.E(ncprep.CannotOverwriteOutput, "writing output", path, err)
		}
	}
	digest, err := out.Commit()
	if err != nil {
		return 0, errors.Wrap(err, "committing output")
	}
	m.log.Printf("Output file creation complete!")
	return digest, nil
}
