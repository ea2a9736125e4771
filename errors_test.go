package ncprep_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/test"
)

func TestErrorString(t *testing.T) {
	err := ncprep.E(ncprep.FileNotFound, "checking input", "/tmp/x.txt", errors.New("no such file"))
	test.MustBe(t, "checking input: file not found '/tmp/x.txt': no such file", err.Error())

	err = ncprep.E(ncprep.InvalidDate)
	test.MustBe(t, "invalid date", err.Error())
}

func TestKindOf(t *testing.T) {
	base := ncprep.E(ncprep.WeightParseFailure, "converting weight")
	tests := []struct {
		err  error
		want ncprep.Kind
	}{
		{nil, ncprep.KindOther},
		{errors.New("plain"), ncprep.KindOther},
		{base, ncprep.WeightParseFailure},
		{errors.Wrap(base, "loading"), ncprep.WeightParseFailure},
		{errors.Wrap(errors.Wrap(base, "loading"), "mapping"), ncprep.WeightParseFailure},
		{fmt.Errorf("std wrap: %w", base), ncprep.WeightParseFailure},
		// the outermost kind wins
		{ncprep.E(ncprep.DataLoadFailure, base), ncprep.DataLoadFailure},
	}
	for i, tst := range tests {
		test.MustBe(t, tst.want, ncprep.KindOf(tst.err), fmt.Sprintf("test %d", i))
	}
	if ncprep.IsKind(nil, ncprep.KindOther) {
		t.Fatal("nil error must not carry a kind")
	}
}

func TestCause(t *testing.T) {
	root := errors.New("root")
	err := errors.Wrap(ncprep.E(ncprep.DataLoadFailure, root), "outer")
	if errors.Cause(err) != root {
		t.Fatalf("unexpected cause %v", errors.Cause(err))
	}
}
