package cmd_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/cmd"
	"github.com/dharif23/ncprep/test"
)

func TestExitCode(t *testing.T) {
	test.MustBe(t, 0, cmd.ExitCode(nil))
	test.MustBe(t, 1, cmd.ExitCode(errors.New("boom")))
	test.MustBe(t, 4, cmd.ExitCode(ncprep.E(ncprep.UncommentedHeader, "checking")))
	test.MustBe(t, 9, cmd.ExitCode(errors.Wrap(ncprep.E(ncprep.WeightParseFailure), "mapping")))
	test.MustBe(t, 11, cmd.ExitCode(ncprep.E(ncprep.InvalidInterval)))

	for k := ncprep.KindOther; k <= ncprep.TooFewColumns; k++ {
		code := cmd.ExitCode(ncprep.E(k))
		switch k {
		case ncprep.KindOther, ncprep.DelimiterMismatch:
			test.MustBe(t, 1, code, k.String())
		default:
			if code < 2 {
				t.Errorf("%s: exit code %d", k, code)
			}
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeLog(t, args...)
	return out, err
}

// executeLog also returns what was logged to stderr.
func executeLog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root := cmd.NewRootCommand(strings.NewReader(""), stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func edges(t *testing.T) string {
	t.Helper()
	var data string
	for i := 0; i < 4; i++ {
		data += fmt.Sprintf("1Addr%029d 1Addr%029d %d 1577836800\n", i, i+10, i)
	}
	return test.MustWriteFile(t, "edges.txt", data)
}

func TestMapCommand(t *testing.T) {
	name := edges(t)
	out, err := execute(t, "map", "--input", name, "--weighted", "no")
	require.NoError(t, err)
	want := ncprep.DerivedPath(name, "_numeric", ".txt")
	require.Equal(t, want+"\n", out)
	require.Equal(t, "0 4\n1 5\n2 6\n3 7\n", test.MustReadFile(t, want))
}

func TestMapCommandMissingFlag(t *testing.T) {
	name := edges(t)
	_, err := execute(t, "map", "--input", name)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--weighted")
	require.Equal(t, 1, cmd.ExitCode(err))
	_, err = os.Stat(ncprep.DerivedPath(name, "_numeric", ".txt"))
	require.True(t, os.IsNotExist(err))
}

func TestMapCommandEnv(t *testing.T) {
	name := edges(t)
	t.Setenv("NCPREP_WEIGHTED", "yes")
	_, err := execute(t, "map", "--input", name)
	require.NoError(t, err)
	require.Equal(t, "0 4 0.0\n1 5 0.69\n2 6 1.1\n3 7 1.39\n",
		test.MustReadFile(t, ncprep.DerivedPath(name, "_numeric", ".txt")))
}

func TestMapCommandExitCode(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", "source target\n1Addr00000000000000000000000000001 1Addr00000000000000000000000000002\n")
	_, err := execute(t, "map", "--input", name, "--weighted", "no")
	require.Equal(t, 4, cmd.ExitCode(err), "got %v", err)

	_, err = execute(t, "map", "--input", name, "--weighted", "maybe")
	require.Equal(t, 8, cmd.ExitCode(err), "got %v", err)
}

func TestClipCommand(t *testing.T) {
	name := edges(t)
	out, err := execute(t, "clip", "--input", name, "--start-date", "2020-01-01", "--interval", "1")
	require.NoError(t, err)
	require.Equal(t, ncprep.DerivedPath(name, "_clipped", "")+"\n", out)

	_, err = execute(t, "clip", "--input", name, "--start-date", "01-01-2020", "--interval", "1")
	require.Equal(t, 11, cmd.ExitCode(err), "got %v", err)

	_, err = execute(t, "clip", "--input", name, "--start-date", "2020-01-01")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--interval")
}

func TestClipCommandZeroInterval(t *testing.T) {
	name := edges(t)
	_, err := execute(t, "clip", "--input", name, "--start-date", "2020-01-01", "--interval", "0")
	require.True(t, ncprep.IsKind(err, ncprep.InvalidInterval), "got %v", err)
	require.Equal(t, 11, cmd.ExitCode(err))

	t.Setenv("NCPREP_INTERVAL", "0")
	_, err = execute(t, "clip", "--input", name, "--start-date", "2020-01-01")
	require.Equal(t, 11, cmd.ExitCode(err), "got %v", err)
}

func TestFilterCommandOutputNotRemovable(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", "aa bb 1\ncc dd 2\n")
	output := filepath.Join(t.TempDir(), "cols.txt")
	require.NoError(t, os.Mkdir(output, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(output, "child"), []byte("x"), 0644))

	_, err := execute(t, "filter", "--input", name, "--columns", "1", "--output", output, "--engine", "native")
	require.True(t, ncprep.IsKind(err, ncprep.CannotOverwriteOutput), "got %v", err)
	require.Equal(t, 7, cmd.ExitCode(err))
}

func TestCommandLogsToStderr(t *testing.T) {
	name := edges(t)
	_, logged, err := executeLog(t, "map", "--input", name, "--weighted", "no")
	require.NoError(t, err)
	require.Contains(t, logged, "Sanity check.....COMPLETE")
	require.Contains(t, logged, "Total detected nodes/values: 8")
	require.NotContains(t, logged, "Checking input file status")

	_, logged, err = executeLog(t, "map", "--input", name, "--weighted", "no", "--verbose")
	require.NoError(t, err)
	require.Contains(t, logged, "Checking input file status")
}

func TestFilterCommandConfigFile(t *testing.T) {
	name := test.MustWriteFile(t, "edges.txt", "aa bb 1\ncc dd 2\n")
	output := filepath.Join(t.TempDir(), "cols.txt")
	config := test.MustWriteFile(t, "ncprep.toml", fmt.Sprintf("input = %q\ncolumns = \"2,1\"\noutput = %q\nengine = \"native\"\n", name, output))

	out, err := execute(t, "filter", "--config", config)
	require.NoError(t, err)
	require.Equal(t, output+"\n", out)
	require.Equal(t, "bb aa\ndd cc\n", test.MustReadFile(t, output))

	// flags win over the config file
	_, err = execute(t, "filter", "--config", config, "--columns", "3")
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", test.MustReadFile(t, output))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ncprep v0.0.0"), out)
}
