// Package filter writes selected columns of a delimited text file, in the
// order asked for, to a new file.
package filter

import (
	"strings"
	"time"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/sanity"
	"github.com/pkg/errors"
)

// OutputSuffix replaces the input's extension when no output is given.
const OutputSuffix = "_cols"

// Main contains the configuration for one filter run.
type Main struct {
	Input     string `help:"Input file path. E.g. /home/user/data/input/file_name.txt/.csv/.dat etc."`
	Columns   string `help:"Index of the columns (comma separated, index starting from 1) E.g. 1,4,2,5."`
	Delimiter string `help:"Separator for the input file, e.g. , or tab. Default is whitespace."`
	Output    string `help:"Output file path. Default is <input>_cols.txt next to the input."`
	Engine    string `help:"Projection engine: awk or native. awk falls back to native when it is not installed."`
	Manifest  string `help:"Path of a YAML manifest describing the run. Empty means none."`

	log ncprep.Logger
	awk AwkEngine
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Engine: "awk",
		log:    ncprep.NopLogger{},
	}
}

// SetLogger sets the logger used by Run.
func (m *Main) SetLogger(l ncprep.Logger) {
	m.log = l
}

// Result describes a successful run.
type Result struct {
	Output  string
	Engine  string
	Indexes []int
	Digest  uint64
	Verdict *sanity.Verdict
}

// Run filters the input file. It satisfies commandeer's Runner.
func (m *Main) Run() error {
	_, err := m.Filter()
	return err
}

// Filter validates the input, column list and output and then projects the
// columns. An existing output file is replaced.
func (m *Main) Filter() (*Result, error) {
	if m.log == nil {
		m.log = ncprep.NopLogger{}
	}
	started := time.Now()
	output := m.Output
	if output == "" {
		m.log.Warnf("No output file provided! Using same directory as input file.....")
		output = ncprep.DerivedPath(m.Input, OutputSuffix, ".txt")
	}
	delimiter := ncprep.NormalizeDelimiter(m.Delimiter)
	if delimiter == "" {
		m.log.Printf("No delimiter provided! Using default [whitespace].....")
	}

	engine, name, err := m.engine()
	if err != nil {
		return nil, err
	}

	verdict := sanity.Check(sanity.Options{
		Input:        m.Input,
		CheckColumns: true,
		ColumnSpec:   m.Columns,
		Delimiter:    delimiter,
		Output:       output,
	}, m.log)
	if err := verdict.Err(); err != nil {
		return nil, err
	}

	res := &Result{Output: output, Engine: name, Indexes: verdict.Indexes, Verdict: verdict}

	m.log.Printf("Creating output file with %s.....", name)
	out, err := ncprep.CreateAtomic(output)
	if err != nil {
		return nil, err
	}
	defer out.Abort()
	if err := engine.Project(out, m.Input, res.Indexes, delimiter); err != nil {
		return nil, ncprep.E(ncprep.DataLoadFailure, "projecting columns", m.Input, err)
	}
	if res.Digest, err = out.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing output")
	}
	m.log.Printf("Output file creation complete!")

	if m.Manifest != "" {
		man := &ncprep.Manifest{
			Transform: "filter",
			Input:     m.Input,
			Output:    output,
			Started:   started.UTC(),
			Duration:  time.Since(started).String(),
			Checks:    verdict.ManifestChecks(),
			Counts:    map[string]int{"columns": len(res.Indexes)},
			Digest:    ncprep.FormatDigest(res.Digest),
		}
		if err := man.WriteFile(m.Manifest); err != nil {
			return nil, errors.Wrap(err, "writing manifest")
		}
	}
	return res, nil
}

func (m *Main) engine() (Engine, string, error) {
	switch strings.ToLower(m.Engine) {
	case "", "awk":
		if m.awk.Available() {
			return m.awk, "awk", nil
		}
		m.log.Warnf("awk not found, using the native engine")
		return NativeEngine{}, "native", nil
	case "native":
		return NativeEngine{}, "native", nil
	}
	return nil, "", errors.Errorf("unknown engine %q, use awk or native", m.Engine)
}
