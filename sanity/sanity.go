// Package sanity runs the checks every transform needs to pass before it may
// read or write any data.
package sanity

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
)

// Status is the outcome of a single check.
type Status int

// Check outcomes. StatusWarn and StatusSkipped do not fail a verdict.
const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "OK [!]"
	case StatusFail:
		return "NOT OK"
	case StatusSkipped:
		return "SKIPPED"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Check names, in the order they appear in a Verdict.
const (
	CheckInput     = "Input file"
	CheckSniff     = "Sniff"
	CheckColumns   = "Columns"
	CheckHeader    = "Headers"
	CheckDelimiter = "Delimiter"
	CheckWidth     = "Column count"
	CheckOutput    = "Output file"
)

// Result is the outcome of one check.
type Result struct {
	Name    string
	Status  Status
	Kind    ncprep.Kind
	Message string
	Path    string
}

// Options selects which checks apply. Only Input is required.
type Options struct {
	Input string

	// CheckColumns turns on the column index check for ColumnSpec, a comma
	// separated list of 1-based column indexes. The header check does not
	// apply when columns are checked.
	CheckColumns bool
	ColumnSpec   string

	// Delimiter, if set, is compared with the sniffed delimiter.
	Delimiter string

	// RequireColumns, if positive, fails files whose first line has fewer
	// fields.
	RequireColumns int

	// Output, if set, is removed when it already exists.
	Output string
}

// Verdict aggregates the results of every applicable check.
type Verdict struct {
	Results []Result
	Sniffed *Sniffed
	Indexes []int
}

// OK is true when no check failed.
func (v *Verdict) OK() bool {
	for _, r := range v.Results {
		if r.Status == StatusFail {
			return false
		}
	}
	return true
}

// Err returns an *ncprep.Error for the first failed check, or nil.
func (v *Verdict) Err() error {
	for _, r := range v.Results {
		if r.Status == StatusFail {
			return ncprep.E(r.Kind, "sanity check "+strings.ToLower(r.Name), r.Path, errors.New(r.Message))
		}
	}
	return nil
}

// Result returns the named check's result.
func (v *Verdict) Result(name string) (Result, bool) {
	for _, r := range v.Results {
		if r.Name == name {
			return r, true
		}
	}
	return Result{}, false
}

// ManifestChecks converts the results for a run manifest.
func (v *Verdict) ManifestChecks() []ncprep.ManifestCheck {
	ret := make([]ncprep.ManifestCheck, 0, len(v.Results))
	for _, r := range v.Results {
		ret = append(ret, ncprep.ManifestCheck{Name: r.Name, Status: r.Status.String(), Message: r.Message})
	}
	return ret
}

func (v *Verdict) add(r Result) {
	v.Results = append(v.Results, r)
}

// Check runs every check that opts makes applicable and logs a summary. The
// output check only runs, and so only deletes anything, when every earlier
// check passed.
func Check(opts Options, log ncprep.Logger) *Verdict {
	if log == nil {
		log = ncprep.NopLogger{}
	}
	v := &Verdict{}

	inputOK := v.checkInput(opts.Input, log)
	if inputOK {
		v.sniff(opts.Input, log)
	}
	if opts.CheckColumns {
		v.checkColumns(opts.ColumnSpec, log)
	} else if inputOK {
		v.checkHeader(log)
	}
	if inputOK && opts.Delimiter != "" {
		v.checkDelimiter(ncprep.NormalizeDelimiter(opts.Delimiter), log)
	}
	if inputOK && opts.RequireColumns > 0 {
		v.checkWidth(opts.RequireColumns, log)
	}
	if opts.Output != "" {
		if v.OK() {
			v.checkOutput(opts.Output, log)
		} else {
			v.add(Result{Name: CheckOutput, Status: StatusSkipped, Message: "earlier checks failed", Path: opts.Output})
		}
	}

	v.Report(log)
	return v
}

func (v *Verdict) checkInput(path string, log ncprep.Logger) bool {
	log.Debugf("Checking input file status.....")
	r := Result{Name: CheckInput, Path: path}
	info, err := os.Stat(path)
	switch {
	case path == "":
		r.Status, r.Kind, r.Message = StatusFail, ncprep.FileNotFound, "no input file given"
	case os.IsNotExist(err):
		r.Status, r.Kind, r.Message = StatusFail, ncprep.FileNotFound, "input file not found"
	case os.IsPermission(err):
		r.Status, r.Kind, r.Message = StatusFail, ncprep.PermissionDenied, "input file can not be accessed"
	case err != nil:
		r.Status, r.Kind, r.Message = StatusFail, ncprep.FileNotFound, err.Error()
	case !info.Mode().IsRegular():
		r.Status, r.Kind, r.Message = StatusFail, ncprep.FileNotFound, "input is not a regular file"
	default:
		f, err := os.Open(path)
		if err != nil {
			r.Status, r.Kind, r.Message = StatusFail, ncprep.PermissionDenied, "input file does not have read permission"
		} else {
			f.Close()
			r.Message = "input file found and readable"
		}
	}
	v.add(r)
	return r.Status != StatusFail
}

// sniff records a warning rather than a failure when detection fails; the
// header check then treats the file as headerless.
func (v *Verdict) sniff(path string, log ncprep.Logger) {
	s, err := SniffFile(path)
	if err != nil {
		log.Warnf("Can not detect delimiter or headers! ERROR: %v", err)
		v.add(Result{Name: CheckSniff, Status: StatusWarn, Message: err.Error(), Path: path})
		return
	}
	v.Sniffed = s
	log.Debugf("Detected delimiter %q, %d columns, header: %v", s.Delimiter, s.NumCols, s.HasHeader())
}

func (v *Verdict) checkHeader(log ncprep.Logger) {
	r := Result{Name: CheckHeader}
	switch {
	case v.Sniffed == nil || !v.Sniffed.HasHeader():
		r.Message = "no headers detected"
	case v.Sniffed.HeaderLine[0] == ncprep.CommentMarker:
		r.Message = "found commented header"
	default:
		r.Status, r.Kind = StatusFail, ncprep.UncommentedHeader
		r.Message = "active header detected, comment [#] or delete it"
	}
	v.add(r)
}

// ParseColumnSpec parses a comma separated list of 1-based column indexes.
func ParseColumnSpec(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ncprep.E(ncprep.MalformedColumnSpec, "parsing column spec", errors.New("empty column list"))
	}
	parts := strings.Split(spec, ",")
	ret := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || i < 1 {
			return nil, ncprep.E(ncprep.MalformedColumnSpec, "parsing column spec",
				errors.Errorf("%q is not a column index (indexes start from 1, e.g. 1,4,2)", p))
		}
		ret = append(ret, i)
	}
	return ret, nil
}

func (v *Verdict) checkColumns(spec string, log ncprep.Logger) {
	log.Debugf("Checking column indexes.....")
	r := Result{Name: CheckColumns}
	idx, err := ParseColumnSpec(spec)
	if err != nil {
		r.Status, r.Kind, r.Message = StatusFail, ncprep.MalformedColumnSpec, errCause(err)
		v.add(r)
		return
	}
	v.Indexes = idx
	if v.Sniffed != nil {
		for _, i := range idx {
			if i > v.Sniffed.NumCols {
				r.Status, r.Kind = StatusFail, ncprep.IndexOutOfRange
				r.Message = fmt.Sprintf("column %d requested but only %d detected", i, v.Sniffed.NumCols)
				v.add(r)
				return
			}
		}
	}
	r.Message = fmt.Sprintf("columns %v", idx)
	v.add(r)
}

func (v *Verdict) checkDelimiter(provided string, log ncprep.Logger) {
	detected := "unknown"
	if v.Sniffed != nil {
		detected = v.Sniffed.Delimiter
	}
	log.Debugf("Provided delimiter: %q, detected delimiter: %q", provided, detected)
	r := Result{Name: CheckDelimiter, Message: fmt.Sprintf("provided %q, detected %q", provided, detected)}
	if v.Sniffed == nil || detected != provided {
		r.Status, r.Kind = StatusWarn, ncprep.DelimiterMismatch
	}
	v.add(r)
}

func (v *Verdict) checkWidth(want int, log ncprep.Logger) {
	if v.Sniffed == nil {
		return
	}
	r := Result{Name: CheckWidth, Message: fmt.Sprintf("%d columns, %d required", v.Sniffed.NumCols, want)}
	if v.Sniffed.NumCols < want {
		r.Status, r.Kind = StatusFail, ncprep.TooFewColumns
	}
	v.add(r)
}

func (v *Verdict) checkOutput(path string, log ncprep.Logger) {
	log.Debugf("Checking output file.....")
	r := Result{Name: CheckOutput, Path: path}
	if _, err := os.Lstat(path); err == nil {
		log.Warnf("Output file %s already exists! Removing old file.....", path)
		if err := os.Remove(path); err != nil {
			r.Status, r.Kind = StatusFail, ncprep.CannotOverwriteOutput
			r.Message = err.Error()
		} else {
			r.Message = "previous output removed"
		}
	} else {
		r.Message = "output file will be created"
	}
	v.add(r)
}

func errCause(err error) string {
	if e, ok := err.(*ncprep.Error); ok && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
