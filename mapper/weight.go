package mapper

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CompressWeight cleans a raw weight token and compresses it onto a log
// scale: spaces and newlines are removed, the rest must be an integer w > -1,
// and the result is ln(1+w) rounded to two decimals.
func CompressWeight(raw string) (float64, error) {
	clean := strings.NewReplacer(" ", "", "\n", "", "\r", "").Replace(raw)
	var w float64
	n, err := strconv.ParseInt(clean, 10, 64)
	switch {
	case err == nil:
		w = float64(n)
	case isRangeErr(err):
		// too big for int64, but still an integer
		b, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return 0, errors.Errorf("invalid integer weight %q", raw)
		}
		w, _ = new(big.Float).SetInt(b).Float64()
	default:
		return 0, errors.Errorf("invalid integer weight %q", raw)
	}
	if w <= -1 {
		return 0, errors.Errorf("weight %q is out of the domain of ln(1+w)", raw)
	}
	return round2(math.Log(1+w)), nil
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FormatWeight renders a compressed weight the way the output files always
// have: the shortest decimal that round trips, with at least one digit after
// the point (0.0, 1.1, 4.62).
func FormatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
