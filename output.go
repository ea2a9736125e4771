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

package ncprep

import (
	"bufio"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

var digestKey = []byte("ncprep-output-digest-key-0123456")

// DerivedPath returns a path in the same directory as input whose name is the
// input's name without its extension, followed by suffix and ext. An empty
// ext keeps the input's own extension.
func DerivedPath(input, suffix, ext string) string {
	origExt := filepath.Ext(input)
	stem := strings.TrimSuffix(input, origExt)
	if ext == "" {
		ext = origExt
	}
	return stem + suffix + ext
}

// AtomicFile writes to a temporary file in the destination directory and
// moves it into place on Commit, so readers never see a half written output.
// Everything written is also fed to a HighwayHash-64 digest.
type AtomicFile struct {
	path string
	tmp  *os.File
	buf  *bufio.Writer
	sum  hash.Hash64
	w    io.Writer
	done bool
}

// CreateAtomic opens a temporary file next to path.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, E(CannotOverwriteOutput, "creating temporary output", path, err)
	}
	sum, err := highwayhash.New64(digestKey)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, errors.Wrap(err, "creating digest")
	}
	a := &AtomicFile{
		path: path,
		tmp:  tmp,
		buf:  bufio.NewWriterSize(tmp, 1<<20),
		sum:  sum,
	}
	a.w = io.MultiWriter(a.buf, a.sum)
	return a, nil
}

// Write implements io.Writer.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.w.Write(p)
}

// WriteString writes s.
func (a *AtomicFile) WriteString(s string) (int, error) {
	return io.WriteString(a.w, s)
}

// Commit flushes the temporary file and renames it over the destination. It
// returns the digest of everything written.
func (a *AtomicFile) Commit() (uint64, error) {
	if a.done {
		return 0, errors.New("output already committed or aborted")
	}
	a.done = true
	if err := a.buf.Flush(); err != nil {
		a.discard()
		return 0, errors.Wrap(err, "flushing output")
	}
	if err := a.tmp.Sync(); err != nil {
		a.discard()
		return 0, errors.Wrap(err, "syncing output")
	}
	if err := a.tmp.Close(); err != nil {
		os.Remove(a.tmp.Name())
		return 0, errors.Wrap(err, "closing output")
	}
	if err := os.Chmod(a.tmp.Name(), 0644); err != nil {
		os.Remove(a.tmp.Name())
		return 0, errors.Wrap(err, "setting output permissions")
	}
	if err := os.Rename(a.tmp.Name(), a.path); err != nil {
		os.Remove(a.tmp.Name())
		return 0, E(CannotOverwriteOutput, "renaming output into place", a.path, err)
	}
	return a.sum.Sum64(), nil
}

// Abort removes the temporary file. It is a no-op after Commit, so it is safe
// to defer.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.discard()
}

func (a *AtomicFile) discard() {
	a.tmp.Close()
	os.Remove(a.tmp.Name())
}
