package ncprep

import (
	"github.com/pkg/errors"
)

// LookupTable maps string labels to dense ids. Ids are handed out in the order
// labels are first seen, starting at 0, so a table with n labels always uses
// exactly the ids 0..n-1.
type LookupTable struct {
	ids    map[string]uint64
	labels []string
}

// NewLookupTable creates an empty LookupTable.
func NewLookupTable() *LookupTable {
	return &LookupTable{
		ids:    make(map[string]uint64),
		labels: make([]string, 0),
	}
}

// BuildLookupTable walks the edges column-major (every source top to bottom,
// then every target top to bottom) and assigns an id to each label the first
// time it appears.
func BuildLookupTable(edges []Edge) *LookupTable {
	t := NewLookupTable()
	for _, e := range edges {
		t.GetID(e.Source)
	}
	for _, e := range edges {
		t.GetID(e.Target)
	}
	return t
}

// GetID returns the id for label, allocating the next id if the label is new.
func (t *LookupTable) GetID(label string) uint64 {
	if id, ok := t.ids[label]; ok {
		return id
	}
	id := uint64(len(t.labels))
	t.labels = append(t.labels, label)
	t.ids[label] = id
	return id
}

// ID returns the id for label without allocating.
func (t *LookupTable) ID(label string) (uint64, bool) {
	id, ok := t.ids[label]
	return id, ok
}

// Label returns the label mapped to id.
func (t *LookupTable) Label(id uint64) (string, error) {
	if id >= uint64(len(t.labels)) {
		return "", errors.Errorf("unknown id %d in lookup table of size %d", id, len(t.labels))
	}
	return t.labels[id], nil
}

// Len is the number of distinct labels.
func (t *LookupTable) Len() int { return len(t.labels) }

// Labels returns the labels in id order. The returned slice must not be
// modified.
func (t *LookupTable) Labels() []string { return t.labels }

// LookupStore persists a LookupTable so that ids can be translated back to
// labels after the run.
type LookupStore interface {
	Save(t *LookupTable) error
	Label(id uint64) (string, error)
	ID(label string) (uint64, error)
	Close() error
}
