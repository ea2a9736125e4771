package ncprep_test

import (
	"testing"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/test"
)

func TestBuildLookupTable(t *testing.T) {
	edges := []ncprep.Edge{
		{Source: "a", Target: "b"},
		{Source: "c", Target: "a"},
		{Source: "a", Target: "d"},
		{Source: "b", Target: "c"},
	}
	table := ncprep.BuildLookupTable(edges)
	test.MustBe(t, []string{"a", "c", "b", "d"}, table.Labels())
	test.MustBe(t, 4, table.Len())

	for id, label := range table.Labels() {
		got, ok := table.ID(label)
		test.MustBe(t, true, ok, label)
		test.MustBe(t, uint64(id), got, label)
		back, err := table.Label(got)
		test.ErrNil(t, err, "Label")
		test.MustBe(t, label, back)
	}
	if _, err := table.Label(4); err == nil {
		t.Fatal("expected error for id past the end of the table")
	}
	if _, ok := table.ID("zz"); ok {
		t.Fatal("ID must not allocate")
	}
	test.MustBe(t, 4, table.Len())
}

func TestLookupTableGetID(t *testing.T) {
	table := ncprep.NewLookupTable()
	test.MustBe(t, uint64(0), table.GetID("x"))
	test.MustBe(t, uint64(1), table.GetID("y"))
	test.MustBe(t, uint64(0), table.GetID("x"))
	test.MustBe(t, 2, table.Len())
}

func TestBuildLookupTableEmpty(t *testing.T) {
	table := ncprep.BuildLookupTable(nil)
	test.MustBe(t, 0, table.Len())
}
