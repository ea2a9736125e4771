package ncprep

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure so that the command line driver can pick an exit
// code for it.
type Kind int

// Error kinds. The zero value is KindOther.
const (
	KindOther Kind = iota
	FileNotFound
	PermissionDenied
	UncommentedHeader
	MalformedColumnSpec
	IndexOutOfRange
	DelimiterMismatch
	CannotOverwriteOutput
	InvalidWeightedFlag
	WeightParseFailure
	DataLoadFailure
	InvalidDate
	InvalidInterval
	TooFewColumns
)

var kindNames = map[Kind]string{
	KindOther:             "other error",
	FileNotFound:          "file not found",
	PermissionDenied:      "permission denied",
	UncommentedHeader:     "uncommented header",
	MalformedColumnSpec:   "malformed column spec",
	IndexOutOfRange:       "column index out of range",
	DelimiterMismatch:     "delimiter mismatch",
	CannotOverwriteOutput: "cannot overwrite output",
	InvalidWeightedFlag:   "invalid weighted flag",
	WeightParseFailure:    "weight parse failure",
	DataLoadFailure:       "data load failure",
	InvalidDate:           "invalid date",
	InvalidInterval:       "invalid interval",
	TooFewColumns:         "too few columns",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by every ncprep component. Op names the
// step that failed and Path the file involved, if any.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// E builds an *Error. Arguments are interpreted by type: a Kind sets the kind,
// an error sets the underlying error, and the first and second strings set Op
// and Path respectively.
func E(args ...interface{}) error {
	e := &Error{}
	strs := 0
	for _, arg := range args {
		switch a := arg.(type) {
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			if strs == 0 {
				e.Op = a
			} else {
				e.Path = a
			}
			strs++
		default:
			panic(fmt.Sprintf("ncprep.E: bad argument of type %T", arg))
		}
	}
	return e
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " '" + e.Path + "'"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach through to the wrapped error.
func (e *Error) Cause() error { return e.Err }

// KindOf reports the Kind of the first *Error found in err's chain, looking
// through both pkg/errors wrappers and Unwrap. It returns KindOther when none
// is found.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		case interface{ Cause() error }:
			err = x.Cause()
		default:
			return KindOther
		}
	}
	return KindOther
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// errorf is a shorthand for a kinded error with a formatted cause.
func errorf(k Kind, op, path, format string, args ...interface{}) error {
	return E(k, op, path, errors.Errorf(format, args...))
}
