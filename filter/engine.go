package filter

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Engine projects the columns of every line of an input file onto w.
type Engine interface {
	Project(w io.Writer, input string, indexes []int, delimiter string) error
}

// AwkEngine runs the awk binary found at Path, or on $PATH when Path is
// empty. Arguments are passed directly; no shell is involved.
type AwkEngine struct {
	Path string
}

// Available reports whether the awk binary can be found.
func (a AwkEngine) Available() bool {
	_, err := exec.LookPath(a.bin())
	return err == nil
}

func (a AwkEngine) bin() string {
	if a.Path == "" {
		return "awk"
	}
	return a.Path
}

// Args returns the argument vector given to awk.
func (a AwkEngine) Args(input string, indexes []int, delimiter string) []string {
	var args []string
	if delimiter != "" {
		args = append(args, "-F", delimiter)
	}
	return append(args, Program(indexes), input)
}

// Project runs awk with stdout going to w.
func (a AwkEngine) Project(w io.Writer, input string, indexes []int, delimiter string) error {
	stderr := &bytes.Buffer{}
	cmd := exec.Command(a.bin(), a.Args(input, indexes, delimiter)...)
	cmd.Stdout = w
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running awk: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Program builds the awk program printing the given 1-based columns
// separated by single spaces, e.g. {print $1" "$4}.
func Program(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = "$" + strconv.Itoa(idx)
	}
	return `{print ` + strings.Join(parts, `" "`) + `}`
}

// NativeEngine does what the awk program does without leaving the process.
// With no delimiter, or a single space, fields are separated by runs of
// blanks and leading blanks are ignored. Any other delimiter separates
// fields exactly. Missing fields print as empty strings.
type NativeEngine struct{}

// Project implements Engine.
func (NativeEngine) Project(w io.Writer, input string, indexes []int, delimiter string) error {
	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()

	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	out := make([]string, len(indexes))
	for scanner.Scan() {
		fields := split(scanner.Text(), delimiter)
		for i, idx := range indexes {
			out[i] = ""
			if idx >= 1 && idx <= len(fields) {
				out[i] = fields[idx-1]
			}
		}
		if _, err := bw.WriteString(strings.Join(out, " ") + "\n"); err != nil {
			return errors.Wrap(err, "writing projection")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	return errors.Wrap(bw.Flush(), "flushing projection")
}

func split(line, delimiter string) []string {
	if delimiter == "" || delimiter == " " {
		return strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
	}
	if line == "" {
		return nil
	}
	return strings.Split(line, delimiter)
}
