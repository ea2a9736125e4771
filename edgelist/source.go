// Copyright 2018 The ncprep Authors.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
)

// Source reads a delimited edge list from a file. Comment lines, blank lines
// and anything following a '#' on a line are skipped. Rows are returned in
// file order.
type Source struct {
	opener    OpenStringer
	delimiter string
	columns   int
}

// NewSource creates a Source. The file to read is set with WithPath or
// WithOpenStringer. e.g.
//
// src := NewSource(WithPath("edges.txt"), WithDelimiter(","), WithColumns(3))
func NewSource(options ...Option) *Source {
	src := &Source{
		delimiter: ncprep.DefaultDelimiter,
	}
	for _, opt := range options {
		opt(src)
	}
	return src
}

// Option is a functional option to pass to NewSource.
type Option func(*Source)

// WithPath returns an Option which makes the Source read the file at path.
func WithPath(path string) Option {
	return func(s *Source) {
		s.opener = fileOpener(path)
	}
}

// WithOpenStringer returns an Option which makes the Source read from o.
func WithOpenStringer(o OpenStringer) Option {
	return func(s *Source) {
		s.opener = o
	}
}

// WithDelimiter returns an Option which sets the field delimiter. An empty
// delimiter means the default single space.
func WithDelimiter(d string) Option {
	return func(s *Source) {
		if d != "" {
			s.delimiter = d
		}
	}
}

// WithColumns returns an Option which limits every row to its first n fields.
// Rows with fewer fields are padded with empty strings. Zero keeps rows as
// they are.
func WithColumns(n int) Option {
	return func(s *Source) {
		s.columns = n
	}
}

// Opener is an interface to a resource which can be Opened and read from the
// beginning.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// OpenStringer is an Opener which also has a String method which should return
// the name of the resource being opened.
type OpenStringer interface {
	fmt.Stringer
	Opener
}

// fileOpener turns a file path into an OpenStringer.
type fileOpener string

func (f fileOpener) Open() (io.ReadCloser, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	return file, nil
}

func (f fileOpener) String() string {
	return string(f)
}

// Row is one data line of an edge list.
type Row struct {
	Fields []string
	Line   int
}

// Field returns the i'th field, or "" if the row is too short.
func (r Row) Field(i int) string {
	if i < len(r.Fields) {
		return r.Fields[i]
	}
	return ""
}

// Len is the number of fields in the row as read, before any padding.
func (r Row) Len() int {
	n := len(r.Fields)
	for n > 0 && r.Fields[n-1] == "" {
		n--
	}
	return n
}

// Rows reads the whole source into memory.
func (s *Source) Rows() ([]Row, error) {
	if s.opener == nil {
		return nil, errors.New("edge list source has no input")
	}
	content, err := s.opener.Open()
	if err != nil {
		return nil, ncprep.E(ncprep.DataLoadFailure, "opening edge list", s.opener.String(), err)
	}
	defer content.Close()

	rows := make([]Row, 0)
	scan := bufio.NewScanner(content)
	scan.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for scan.Scan() {
		line++
		txt := stripComment(scan.Text())
		if strings.TrimSpace(txt) == "" {
			continue
		}
		fields := ncprep.SplitFields(txt, s.delimiter)
		rows = append(rows, Row{Fields: s.shape(fields), Line: line})
	}
	if err := scan.Err(); err != nil {
		return nil, ncprep.E(ncprep.DataLoadFailure, fmt.Sprintf("scanning line %d", line+1), s.opener.String(), err)
	}
	return rows, nil
}

func (s *Source) shape(fields []string) []string {
	if s.columns <= 0 {
		return fields
	}
	if len(fields) >= s.columns {
		return fields[:s.columns]
	}
	padded := make([]string, s.columns)
	copy(padded, fields)
	return padded
}

// stripComment drops everything from the first comment marker on.
func stripComment(line string) string {
	line = strings.TrimRight(line, "\r")
	if i := strings.IndexByte(line, ncprep.CommentMarker); i >= 0 {
		return line[:i]
	}
	return line
}
