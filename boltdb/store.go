package boltdb

import (
	"encoding/binary"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
)

var _ ncprep.LookupStore = &Store{}

var (
	idBucket    = []byte("idKey")
	labelBucket = []byte("labelKey")
)

// Store is an ncprep.LookupStore which keeps the two way label/id mapping in a
// bolt database file.
type Store struct {
	Db *bolt.DB
}

// NewStore opens (creating if needed) the bolt database at filename.
func NewStore(filename string) (*Store, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(idBucket); err != nil {
			return errors.Wrap(err, "creating id bucket")
		}
		if _, err := tx.CreateBucketIfNotExists(labelBucket); err != nil {
			return errors.Wrap(err, "creating label bucket")
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return &Store{Db: db}, nil
}

// Close syncs and closes the underlying boltdb.
func (s *Store) Close() error {
	err := s.Db.Sync()
	if err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return s.Db.Close()
}

// Save replaces whatever table the store held with t. Labels are written in
// batches so a large table does not end up in one huge transaction.
func (s *Store) Save(t *ncprep.LookupTable) error {
	err := s.Db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{idBucket, labelBucket} {
			if err := tx.DeleteBucket(b); err != nil && err != bolt.ErrBucketNotFound {
				return errors.Wrapf(err, "clearing bucket %s", b)
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return errors.Wrapf(err, "recreating bucket %s", b)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "clearing previous table")
	}

	labels := t.Labels()
	var batchSize = 10000
	for start := 0; start < len(labels); start += batchSize {
		end := start + batchSize
		if end > len(labels) {
			end = len(labels)
		}
		err := s.Db.Update(func(tx *bolt.Tx) error {
			ib := tx.Bucket(idBucket)
			lb := tx.Bucket(labelBucket)
			for i := start; i < end; i++ {
				idBytes := make([]byte, 8)
				binary.BigEndian.PutUint64(idBytes, uint64(i))
				if err := ib.Put(idBytes, []byte(labels[i])); err != nil {
					return errors.Wrap(err, "putting into id bucket")
				}
				if err := lb.Put([]byte(labels[i]), idBytes); err != nil {
					return errors.Wrap(err, "putting into label bucket")
				}
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "inserting batch")
		}
	}
	return nil
}

// Label returns the label stored for id.
func (s *Store) Label(id uint64) (label string, err error) {
	err = s.Db.View(func(tx *bolt.Tx) error {
		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, id)
		val := tx.Bucket(idBucket).Get(idBytes)
		if val == nil {
			return errors.Errorf("id %d not found", id)
		}
		label = string(val)
		return nil
	})
	return label, err
}

// ID returns the id stored for label.
func (s *Store) ID(label string) (id uint64, err error) {
	err = s.Db.View(func(tx *bolt.Tx) error {
		val := tx.Bucket(labelBucket).Get([]byte(label))
		if len(val) != 8 {
			return errors.Errorf("label %q not found", label)
		}
		id = binary.BigEndian.Uint64(val)
		return nil
	})
	return id, err
}
