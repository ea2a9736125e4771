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

package leveldb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

var _ ncprep.LookupStore = &Store{}

// Store is an ncprep.LookupStore which keeps the label/id mapping in two
// leveldb instances under one directory, one keyed by id and one by label.
type Store struct {
	dirname  string
	idMap    *leveldb.DB
	labelMap *leveldb.DB
}

type errorList []error

func (errs errorList) Error() string {
	errstrings := make([]string, len(errs))
	for i, err := range errs {
		errstrings[i] = err.Error()
	}
	return strings.Join(errstrings, "; ")
}

// NewStore opens (creating if needed) the leveldb instances under dirname.
func NewStore(dirname string) (*Store, error) {
	err := os.MkdirAll(dirname, 0700)
	if err != nil {
		return nil, errors.Wrap(err, "making directory")
	}
	s := &Store{dirname: dirname}
	s.idMap, err = leveldb.OpenFile(filepath.Join(dirname, "id"), &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %v", filepath.Join(dirname, "id"))
	}
	s.labelMap, err = leveldb.OpenFile(filepath.Join(dirname, "label"), &opt.Options{})
	if err != nil {
		s.idMap.Close()
		return nil, errors.Wrapf(err, "opening leveldb at %v", filepath.Join(dirname, "label"))
	}
	return s, nil
}

// Close closes both leveldb instances.
func (s *Store) Close() error {
	errs := make(errorList, 0)
	if err := s.idMap.Close(); err != nil {
		errs = append(errs, errors.Wrap(err, "closing idMap"))
	}
	if err := s.labelMap.Close(); err != nil {
		errs = append(errs, errors.Wrap(err, "closing labelMap"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Save replaces whatever table the store held with t.
func (s *Store) Save(t *ncprep.LookupTable) error {
	for _, db := range []*leveldb.DB{s.idMap, s.labelMap} {
		if err := clearDB(db); err != nil {
			return errors.Wrap(err, "clearing previous table")
		}
	}
	const batchSize = 10000
	labels := t.Labels()
	ib, lb := new(leveldb.Batch), new(leveldb.Batch)
	for i, label := range labels {
		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, uint64(i))
		ib.Put(idBytes, []byte(label))
		lb.Put([]byte(label), idBytes)
		if ib.Len() == batchSize || i == len(labels)-1 {
			if err := s.idMap.Write(ib, &opt.WriteOptions{}); err != nil {
				return errors.Wrap(err, "writing id batch")
			}
			if err := s.labelMap.Write(lb, &opt.WriteOptions{}); err != nil {
				return errors.Wrap(err, "writing label batch")
			}
			ib.Reset()
			lb.Reset()
		}
	}
	return nil
}

func clearDB(db *leveldb.DB) error {
	it := db.NewIterator(nil, &opt.ReadOptions{})
	defer it.Release()
	b := new(leveldb.Batch)
	for it.Next() {
		b.Delete(append([]byte(nil), it.Key()...))
	}
	if err := it.Error(); err != nil {
		return errors.Wrap(err, "iterating")
	}
	return db.Write(b, &opt.WriteOptions{Sync: true})
}

// Label returns the label stored for id.
func (s *Store) Label(id uint64) (string, error) {
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, id)
	data, err := s.idMap.Get(idBytes, &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return "", errors.Errorf("id %d not found", id)
	} else if err != nil {
		return "", errors.Wrap(err, "reading id map")
	}
	return string(data), nil
}

// ID returns the id stored for label.
func (s *Store) ID(label string) (uint64, error) {
	data, err := s.labelMap.Get([]byte(label), &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return 0, errors.Errorf("label %q not found", label)
	} else if err != nil {
		return 0, errors.Wrap(err, "reading label map")
	}
	return binary.BigEndian.Uint64(data), nil
}
