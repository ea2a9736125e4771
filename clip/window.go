package clip

import (
	"strconv"
	"time"

	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
)

// DateLayout is the only accepted start date format.
const DateLayout = "2006-01-02"

// Window is a run of whole UTC calendar days.
type Window struct {
	Start time.Time
	// End is midnight after the last day, so it is not part of the window.
	End time.Time
}

// NewWindow returns the window of interval days starting on start.
func NewWindow(start string, interval int) (Window, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return Window{}, ncprep.E(ncprep.InvalidDate, "parsing start date", errors.Errorf("%q is not a YYYY-MM-DD date", start))
	}
	if interval <= 0 {
		return Window{}, ncprep.E(ncprep.InvalidInterval, "checking interval", errors.Errorf("interval must be a positive number of days, got %d", interval))
	}
	return Window{Start: s, End: s.AddDate(0, 0, interval)}, nil
}

// Contains reports whether the Unix timestamp ts falls on one of the
// window's days.
func (w Window) Contains(ts int64) bool {
	t := time.Unix(ts, 0).UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// Last returns the last day in the window.
func (w Window) Last() time.Time {
	return w.End.AddDate(0, 0, -1)
}

func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.Last().Format(DateLayout)
}

func parseTimestamp(s string) (int64, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("timestamp %q is not an integer", s)
	}
	return ts, nil
}
