package mapper

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dharif23/ncprep"
	"github.com/dharif23/ncprep/edgelist"
	"github.com/pkg/errors"
)

// MinLabelLength is the shortest source or target label kept. Anything
// shorter can not be an address and the row is dropped.
const MinLabelLength = 34

// Counts tracks what happened to the rows of one run.
type Counts struct {
	Read         int
	DroppedEmpty int
	DroppedShort int
	Written      int
	Labels       int
}

// load reads the edge list and compresses weights. A weight that does not
// parse aborts the load.
func load(path, delimiter string, weighted bool, log ncprep.Logger) ([]ncprep.Edge, error) {
	log.Printf("Loading input dataset.....")
	cols := ncprep.Columns(weighted)
	src := edgelist.NewSource(
		edgelist.WithPath(path),
		edgelist.WithDelimiter(delimiter),
		edgelist.WithColumns(len(cols)),
	)
	rows, err := src.Rows()
	if err != nil {
		return nil, errors.Wrap(err, "loading input dataset")
	}
	edges := make([]ncprep.Edge, 0, len(rows))
	for _, row := range rows {
		e := ncprep.Edge{
			Source: row.Field(0),
			Target: row.Field(1),
			Line:   row.Line,
		}
		if weighted {
			w, err := CompressWeight(row.Field(2))
			if err != nil {
				return nil, ncprep.E(ncprep.WeightParseFailure, fmt.Sprintf("converting weight on line %d", row.Line), path, err)
			}
			e.Weight = FormatWeight(w)
		}
		edges = append(edges, e)
	}
	log.Printf("Input dataset loaded successfully!")
	return edges, nil
}

// clean drops rows with a missing label and then rows with a label shorter
// than MinLabelLength. Surviving rows keep their relative order.
func clean(edges []ncprep.Edge, counts *Counts, log ncprep.Logger) []ncprep.Edge {
	log.Printf("Removing empty target/destination(s).....")
	kept := edges[:0]
	for _, e := range edges {
		if e.Source == "" || e.Target == "" {
			counts.DroppedEmpty++
			continue
		}
		kept = append(kept, e)
	}

	log.Printf("Cleaning data.....")
	n := 0
	for _, e := range kept {
		if utf8.RuneCountInString(e.Source) < MinLabelLength || utf8.RuneCountInString(e.Target) < MinLabelLength {
			counts.DroppedShort++
			continue
		}
		kept[n] = e
		n++
	}
	log.Debugf("Dropped %d rows with empty labels and %d rows with short labels", counts.DroppedEmpty, counts.DroppedShort)
	return kept[:n]
}

// rewrite substitutes every label by its id. The table is built from the same
// edges, so a missing label means the table and the edges are out of sync.
func rewrite(edges []ncprep.Edge, table *ncprep.LookupTable, log ncprep.Logger) error {
	log.Printf("Mapping data frame.....")
	start := time.Now()
	for i := range edges {
		e := &edges[i]
		src, ok := table.ID(e.Source)
		if !ok {
			return ncprep.E(ncprep.DataLoadFailure, "mapping source", errors.Errorf("label %q on line %d missing from lookup table", e.Source, e.Line))
		}
		dst, ok := table.ID(e.Target)
		if !ok {
			return ncprep.E(ncprep.DataLoadFailure, "mapping target", errors.Errorf("label %q on line %d missing from lookup table", e.Target, e.Line))
		}
		e.Source = strconv.FormatUint(src, 10)
		e.Target = strconv.FormatUint(dst, 10)
	}
	log.Printf("Elapsed time for mapping: %s", time.Since(start))
	return nil
}

// write stores the mapped edges space separated without a header.
func write(path string, edges []ncprep.Edge, weighted bool, log ncprep.Logger) (uint64, error) {
	log.Printf("Creating output file.....")
	out, err := ncprep.CreateAtomic(path)
	if err != nil {
		return 0, err
	}
	defer out.Abort()
	for _, e := range edges {
		line := e.Source + " " + e.Target
		if weighted {
			line += " " + e.Weight
		}
		if _, err := out.WriteString(line + "\n"); err != nil {
			return 0, ncprep.E(ncprep.CannotOverwriteOutput, "writing output", path, err)
		}
	}
	digest, err := out.Commit()
	if err != nil {
		return 0, errors.Wrap(err, "committing output")
	}
	log.Printf("Output file creation complete!")
	return digest, nil
}
