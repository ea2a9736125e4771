// Package mapper replaces the string labels of an edge list with dense
// integer ids.
package mapper

import (
	"strings"
	"time"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/boltdb"
	"github.com/dharif23/ncprep/leveldb"
	"github.com/dharif23/ncprep/sanity"
	"github.com/pkg/errors"
)

// OutputSuffix is appended to the input's name, in place of its extension,
// to name the output.
const OutputSuffix = "_numeric"

// Main contains the configuration for one mapping run.
type Main struct {
	Input               string `help:"Input file path. E.g. /home/user/data/input/file_name.txt"`
	Delimiter           string `help:"Column separator of the input file, e.g. , or tab. Default is whitespace."`
	Weighted            string `help:"yes/no if the file has a weight column."`
	StrictWeightedCheck bool   `help:"Fail the sanity check when the file has fewer columns than the weighted flag implies."`
	LookupDB            string `flag:"lookup-db" help:"Path to keep the label/id lookup table in. Empty means it is discarded."`
	LookupBackend       string `help:"Store for the lookup table: bolt or leveldb."`
	Manifest            string `help:"Path of a YAML manifest describing the run. Empty means none."`

	log ncprep.Logger
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		LookupBackend: "bolt",
		log:           ncprep.NopLogger{},
	}
}

// SetLogger sets the logger used by Run.
func (m *Main) SetLogger(l ncprep.Logger) {
	m.log = l
}

// Result describes a successful run.
type Result struct {
	Output  string
	Counts  Counts
	Digest  uint64
	Verdict *sanity.Verdict
	Table   *ncprep.LookupTable
}

// Run maps the input file. It satisfies commandeer's Runner.
func (m *Main) Run() error {
	_, err := m.Map()
	return err
}

// Map runs the sanity checks, then loads, cleans and maps the input and
// writes <input stem>_numeric.txt next to it. Any failure aborts the run and
// leaves no output behind.
func (m *Main) Map() (*Result, error) {
	if m.log == nil {
		m.log = ncprep.NopLogger{}
	}
	started := time.Now()
	weighted, err := ncprep.ParseWeighted(m.Weighted)
	if err != nil {
		return nil, err
	}
	delimiter := ncprep.NormalizeDelimiter(m.Delimiter)

	opts := sanity.Options{Input: m.Input, Delimiter: delimiter}
	if m.StrictWeightedCheck {
		opts.RequireColumns = len(ncprep.Columns(weighted))
	}
	verdict := sanity.Check(opts, m.log)
	if err := verdict.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Output:  ncprep.DerivedPath(m.Input, OutputSuffix, ".txt"),
		Verdict: verdict,
	}
	edges, err := load(m.Input, delimiter, weighted, m.log)
	if err != nil {
		return nil, err
	}
	res.Counts.Read = len(edges)
	edges = clean(edges, &res.Counts, m.log)
	m.log.Printf("Data cleanup complete!")

	m.log.Printf("Extracting unique values/nodes.....")
	res.Table = ncprep.BuildLookupTable(edges)
	res.Counts.Labels = res.Table.Len()
	m.log.Printf("Total detected nodes/values: %d", res.Counts.Labels)

	if err := rewrite(edges, res.Table, m.log); err != nil {
		return nil, err
	}
	res.Digest, err = write(res.Output, edges, weighted, m.log)
	if err != nil {
		return nil, err
	}
	res.Counts.Written = len(edges)
	m.log.Printf("Wrote %d rows to %s (digest %s)", res.Counts.Written, res.Output, ncprep.FormatDigest(res.Digest))

	if m.LookupDB != "" {
		if err := m.saveTable(res.Table); err != nil {
			return nil, err
		}
	}
	if m.Manifest != "" {
		if err := m.writeManifest(res, started); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// OpenStore opens the lookup store named by backend at path.
func OpenStore(backend, path string) (ncprep.LookupStore, error) {
	var store ncprep.LookupStore
	switch strings.ToLower(backend) {
	case "", "bolt", "boltdb":
		s, err := boltdb.NewStore(path)
		if err != nil {
			return nil, err
		}
		store = s
	case "leveldb", "level":
		s, err := leveldb.NewStore(path)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, errors.Errorf("unknown lookup backend %q, use bolt or leveldb", backend)
	}
	return store, nil
}

func (m *Main) saveTable(t *ncprep.LookupTable) error {
	m.log.Printf("Saving lookup table to %s (%s).....", m.LookupDB, m.LookupBackend)
	store, err := OpenStore(m.LookupBackend, m.LookupDB)
	if err != nil {
		return errors.Wrap(err, "opening lookup store")
	}
	if err := store.Save(t); err != nil {
		store.Close()
		return errors.Wrap(err, "saving lookup table")
	}
	return errors.Wrap(store.Close(), "closing lookup store")
}

func (m *Main) writeManifest(res *Result, started time.Time) error {
	man := &ncprep.Manifest{
		Transform: "map",
		Input:     m.Input,
		Output:    res.Output,
		Started:   started.UTC(),
		Duration:  time.Since(started).String(),
		Checks:    res.Verdict.ManifestChecks(),
		Counts: map[string]int{
			"read":          res.Counts.Read,
			"dropped_empty": res.Counts.DroppedEmpty,
			"dropped_short": res.Counts.DroppedShort,
			"written":       res.Counts.Written,
			"labels":        res.Counts.Labels,
		},
		Digest: ncprep.FormatDigest(res.Digest),
	}
	return errors.Wrap(man.WriteFile(m.Manifest), "writing manifest")
}
