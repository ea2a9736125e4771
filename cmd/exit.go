package cmd

import "github.com/dharif23/ncprep"

var exitCodes = map[ncprep.Kind]int{
	ncprep.FileNotFound:          2,
	ncprep.PermissionDenied:      3,
	ncprep.UncommentedHeader:     4,
	ncprep.MalformedColumnSpec:   5,
	ncprep.IndexOutOfRange:       6,
	ncprep.CannotOverwriteOutput: 7,
	ncprep.InvalidWeightedFlag:   8,
	ncprep.WeightParseFailure:    9,
	ncprep.DataLoadFailure:       10,
	ncprep.InvalidDate:           11,
	ncprep.InvalidInterval:       11,
	ncprep.TooFewColumns:         12,
}

// ExitCode returns the process exit status for err: 0 for nil, a code per
// error kind, and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[ncprep.KindOf(err)]; ok {
		return code
	}
	return 1
}
