// Package ncprep prepares raw edge lists for graph and community detection
// tools. An edge list is a text file whose rows are
//
//    source target [weight] [timestamp]
//
// separated by a delimiter, with optional '#' comment lines.
//
// Three transforms are provided, each in its own sub-package, and each one
// runs the shared sanity checks in package sanity before touching any data:
//
// 1. filter
//
//    Projects a file onto a list of 1-based columns, in the given order. The
//    projection itself is handed to awk, or done in process when awk is not
//    available.
//
// 2. clip
//
//    Keeps only the rows whose Unix timestamp falls on one of the calendar
//    days (UTC) of a window starting at a given date.
//
// 3. mapper
//
//    Replaces every source and target label with a dense integer id, drops
//    rows whose labels are missing or too short to be addresses, and
//    compresses weights with round(ln(1+w), 2). The label/id table can be
//    kept in boltdb or leveldb for translating results back afterwards.
//
// Every transform writes its output through an AtomicFile, so a failed run
// never leaves a partial file behind. Failures are reported as *Error values
// whose Kind the command line driver maps to an exit code.
package ncprep
