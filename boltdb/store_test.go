package boltdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dharif23/ncprep"
)

func TestBoltStore(t *testing.T) {
	boltFile := filepath.Join(t.TempDir(), "lookup.db")
	bs, err := NewStore(boltFile)
	if err != nil {
		t.Fatalf("couldn't get bolt db: %v", err)
	}
	table := ncprep.NewLookupTable()
	table.GetID("hello")
	table.GetID("world")
	if err := bs.Save(table); err != nil {
		t.Fatalf("saving table: %v", err)
	}
	if err := bs.Close(); err != nil {
		t.Fatalf("closing bolt db: %v", err)
	}

	bs, err = NewStore(boltFile)
	if err != nil {
		t.Fatalf("reopening bolt db: %v", err)
	}
	defer bs.Close()

	label, err := bs.Label(1)
	if err != nil || label != "world" {
		t.Fatalf("after reopen, unexpected label for id 1: %s, %v", label, err)
	}
	id, err := bs.ID("hello")
	if err != nil || id != 0 {
		t.Fatalf("after reopen, unexpected id for hello: %d, %v", id, err)
	}
	if _, err := bs.Label(2); err == nil {
		t.Fatalf("expected error for unknown id")
	}

	// saving a new table replaces the old one
	table = ncprep.NewLookupTable()
	table.GetID("other")
	if err := bs.Save(table); err != nil {
		t.Fatalf("saving second table: %v", err)
	}
	if _, err := bs.ID("hello"); err == nil {
		t.Fatalf("expected hello to be gone after replacing the table")
	}
	label, err = bs.Label(0)
	if err != nil || label != "other" {
		t.Fatalf("unexpected label for id 0 in second table: %s, %v", label, err)
	}
}

func TestBoltStoreLargeTable(t *testing.T) {
	bs, err := NewStore(filepath.Join(t.TempDir(), "lookup.db"))
	if err != nil {
		t.Fatalf("couldn't get bolt db: %v", err)
	}
	defer bs.Close()
	table := ncprep.NewLookupTable()
	for i := 0; i < 25000; i++ {
		table.GetID(fmt.Sprintf("label-%d", i))
	}
	if err := bs.Save(table); err != nil {
		t.Fatalf("saving table: %v", err)
	}
	for _, id := range []uint64{0, 9999, 10000, 24999} {
		want, _ := table.Label(id)
		got, err := bs.Label(id)
		if err != nil || got != want {
			t.Fatalf("id %d: got %q, %v, want %q", id, got, err, want)
		}
	}
}
