package sanity_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/sanity"
	"github.com/dharif23/ncprep/test"
)

const (
	addrA = "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"
	addrB = "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"
	addrC = "1F1tAaz5x1HUXrCNLbtMDqcw6o5GNn4xqX"
)

var plain = addrA + " " + addrB + " 100 1514764800\n" +
	addrA + " " + addrC + " 5 1514851200\n"

func TestSniffWhitespace(t *testing.T) {
	s, err := sanity.Sniff(strings.NewReader(plain))
	require.NoError(t, err)
	require.Equal(t, " ", s.Delimiter)
	require.Equal(t, 4, s.NumCols)
	require.False(t, s.HasHeader())
}

func TestSniffComma(t *testing.T) {
	s, err := sanity.Sniff(strings.NewReader("a,b,1\nc,d,2\n"))
	require.NoError(t, err)
	require.Equal(t, ",", s.Delimiter)
	require.Equal(t, 3, s.NumCols)
	require.False(t, s.HasHeader())
}

func TestSniffHeader(t *testing.T) {
	s, err := sanity.Sniff(strings.NewReader("source target weight timestamp\n" + plain))
	require.NoError(t, err)
	require.True(t, s.HasHeader())
	require.Equal(t, "source target weight timestamp", s.HeaderLine)
}

func TestSniffReadsOnlySample(t *testing.T) {
	// the sixth line would break delimiter consistency if it were read
	data := strings.Repeat("a,b\n", sanity.SampleLines) + "a;b;c\n"
	s, err := sanity.Sniff(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, ",", s.Delimiter)
}

func TestSniffSampleCountsBlankLines(t *testing.T) {
	// lines 2-4 are blank, so the short sixth line is outside the sample
	data := "a b c\n\n\n\na b c\na b\n"
	s, err := sanity.Sniff(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, " ", s.Delimiter)
	require.Equal(t, 3, s.NumCols)
}

func TestSniffFailures(t *testing.T) {
	_, err := sanity.Sniff(strings.NewReader(""))
	require.Error(t, err)
	_, err = sanity.Sniff(strings.NewReader("a\nb c d\n"))
	require.Error(t, err)
}

func TestCheckPlainFile(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", plain)
	log := &test.Logger{}
	v := sanity.Check(sanity.Options{Input: name}, log)
	require.True(t, v.OK())
	require.NoError(t, v.Err())
	r, ok := v.Result(sanity.CheckHeader)
	require.True(t, ok)
	require.Equal(t, sanity.StatusOK, r.Status)
	require.True(t, log.Contains("Summary"))
	_, ok = v.Result(sanity.CheckDelimiter)
	require.False(t, ok, "delimiter check only applies when a delimiter is given")
}

func TestCheckInputMissing(t *testing.T) {
	v := sanity.Check(sanity.Options{Input: filepath.Join(t.TempDir(), "missing.txt")}, nil)
	require.False(t, v.OK())
	require.True(t, ncprep.IsKind(v.Err(), ncprep.FileNotFound))

	v = sanity.Check(sanity.Options{Input: t.TempDir()}, nil)
	require.True(t, ncprep.IsKind(v.Err(), ncprep.FileNotFound), "directories are not input files")
}

func TestCheckInputUnreadable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read any file")
	}
	name := test.MustWriteFile(t, "edges.txt", plain)
	require.NoError(t, os.Chmod(name, 0200))
	v := sanity.Check(sanity.Options{Input: name}, nil)
	require.True(t, ncprep.IsKind(v.Err(), ncprep.PermissionDenied))
}

func TestCheckHeader(t *testing.T) {
	active := test.MustWriteFile(t, "active.txt", "source target weight timestamp\n"+plain)
	v := sanity.Check(sanity.Options{Input: active}, nil)
	require.False(t, v.OK())
	require.True(t, ncprep.IsKind(v.Err(), ncprep.UncommentedHeader))

	commented := test.MustWriteFile(t, "commented.txt", "#source target weight timestamp\n"+plain)
	v = sanity.Check(sanity.Options{Input: commented}, nil)
	require.True(t, v.OK())
	r, _ := v.Result(sanity.CheckHeader)
	require.Equal(t, "found commented header", r.Message)
}

func TestCheckSniffFailureIsNotFatal(t *testing.T) {
	name := test.MustWriteFile(t, "odd.txt", "a\nb c d\n")
	v := sanity.Check(sanity.Options{Input: name, Delimiter: ","}, nil)
	require.True(t, v.OK())
	r, ok := v.Result(sanity.CheckSniff)
	require.True(t, ok)
	require.Equal(t, sanity.StatusWarn, r.Status)
	r, _ = v.Result(sanity.CheckDelimiter)
	require.Equal(t, sanity.StatusWarn, r.Status)
}

func TestCheckDelimiter(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", plain)

	v := sanity.Check(sanity.Options{Input: name, Delimiter: "space"}, nil)
	r, _ := v.Result(sanity.CheckDelimiter)
	require.Equal(t, sanity.StatusOK, r.Status)

	v = sanity.Check(sanity.Options{Input: name, Delimiter: ","}, nil)
	r, _ = v.Result(sanity.CheckDelimiter)
	require.Equal(t, sanity.StatusWarn, r.Status)
	require.Equal(t, ncprep.DelimiterMismatch, r.Kind)
	require.True(t, v.OK(), "a delimiter mismatch never blocks")
}

func TestCheckColumns(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", "source target weight timestamp\n"+plain)
	cases := []struct {
		spec string
		kind ncprep.Kind
		ok   bool
	}{
		{"1,4,2", ncprep.KindOther, true},
		{"", ncprep.MalformedColumnSpec, false},
		{"1,x", ncprep.MalformedColumnSpec, false},
		{"0,1", ncprep.MalformedColumnSpec, false},
		{"1,5", ncprep.IndexOutOfRange, false},
	}
	for _, c := range cases {
		v := sanity.Check(sanity.Options{Input: name, CheckColumns: true, ColumnSpec: c.spec}, nil)
		require.Equal(t, c.ok, v.OK(), "spec %q", c.spec)
		if !c.ok {
			require.Equal(t, c.kind, ncprep.KindOf(v.Err()), "spec %q", c.spec)
		}
		_, ok := v.Result(sanity.CheckHeader)
		require.False(t, ok, "no header check with a column spec")
	}
}

func TestParseColumnSpec(t *testing.T) {
	idx, err := sanity.ParseColumnSpec(" 3, 1 ,2")
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 2}, idx)
}

func TestCheckRequireColumns(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", addrA+" "+addrB+"\n")
	v := sanity.Check(sanity.Options{Input: name, RequireColumns: 4}, nil)
	require.True(t, ncprep.IsKind(v.Err(), ncprep.TooFewColumns))
}

func TestCheckOutput(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", plain)
	out := filepath.Join(filepath.Dir(name), "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))

	v := sanity.Check(sanity.Options{Input: name, Output: out}, nil)
	require.True(t, v.OK())
	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err), "existing output is removed")

	v = sanity.Check(sanity.Options{Input: name, Output: filepath.Join(t.TempDir(), "new.txt")}, nil)
	require.True(t, v.OK())
}

func TestCheckOutputNotRemovable(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", plain)
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.Mkdir(out, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "child"), []byte("x"), 0644))

	v := sanity.Check(sanity.Options{Input: name, CheckColumns: true, ColumnSpec: "1", Output: out}, nil)
	require.False(t, v.OK())
	require.True(t, ncprep.IsKind(v.Err(), ncprep.CannotOverwriteOutput), "got %v", v.Err())
	r, ok := v.Result(sanity.CheckOutput)
	require.True(t, ok)
	require.Equal(t, sanity.StatusFail, r.Status)
	_, err := os.Stat(filepath.Join(out, "child"))
	require.NoError(t, err)
}

func TestCheckOutputSkippedOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0644))
	v := sanity.Check(sanity.Options{Input: filepath.Join(dir, "missing"), Output: out}, nil)
	require.False(t, v.OK())
	r, _ := v.Result(sanity.CheckOutput)
	require.Equal(t, sanity.StatusSkipped, r.Status)
	require.Equal(t, "keep", test.MustReadFile(t, out))
}

func TestReportDoesNotChangeVerdict(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", "source target weight timestamp\n"+plain)
	v := sanity.Check(sanity.Options{Input: name}, nil)
	before := v.OK()
	log := &test.Logger{}
	v.Report(log)
	require.Equal(t, before, v.OK())
	require.True(t, log.Contains("NOT OK"))
	require.True(t, log.Contains("Sanity check failed!"))
}
