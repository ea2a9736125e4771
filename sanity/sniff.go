package sanity

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dharif23/ncprep"
	"github.com/pkg/errors"
)

// SampleLines is the number of lines Sniff looks at.
const SampleLines = 5

// candidates are tried in order; earlier entries win ties.
var candidates = []string{",", "\t", ";", " ", ":", "|"}

// Sniffed is what Sniff could tell about a file from its first lines.
type Sniffed struct {
	Delimiter string
	// HeaderLine is the raw first line when it looks like a header, and ""
	// otherwise.
	HeaderLine string
	NumCols    int
}

// HasHeader reports whether the first line looks like a header.
func (s *Sniffed) HasHeader() bool { return s.HeaderLine != "" }

// SniffFile opens path and sniffs it.
func SniffFile(path string) (*Sniffed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file to sniff")
	}
	defer f.Close()
	return Sniff(f)
}

// Sniff guesses the delimiter of the text in r and whether its first line is
// a header, using at most SampleLines lines. Blank lines count towards the
// sample but are not examined. A delimiter is accepted if it
// splits every sampled line into the same number of fields.
func Sniff(r io.Reader) (*Sniffed, error) {
	lines, err := sample(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("no data to sniff")
	}
	delim, ok := detectDelimiter(lines)
	if !ok {
		return nil, errors.New("could not determine delimiter")
	}
	s := &Sniffed{
		Delimiter: delim,
		NumCols:   len(ncprep.SplitFields(lines[0], delim)),
	}
	if hasHeader(lines, delim) {
		s.HeaderLine = lines[0]
	}
	return s, nil
}

func sample(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	lines := make([]string, 0, SampleLines)
	for read := 0; read < SampleLines; read++ {
		line, err := br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "reading sample")
		}
	}
	return lines, nil
}

func countDelim(line, delim string) int {
	if delim == " " {
		return len(strings.Fields(line)) - 1
	}
	return strings.Count(line, delim)
}

func detectDelimiter(lines []string) (string, bool) {
	best, bestCount := "", 0
	for _, d := range candidates {
		n := countDelim(lines[0], d)
		if n <= 0 {
			continue
		}
		consistent := true
		for _, l := range lines[1:] {
			if countDelim(l, d) != n {
				consistent = false
				break
			}
		}
		if consistent && n > bestCount {
			best, bestCount = d, n
		}
	}
	return best, bestCount > 0
}

// hasHeader lets every column vote. A column whose data cells are all numbers
// votes for a header when the first cell is not a number. A column whose data
// cells all have the same length votes for a header when the first cell's
// length differs. Other columns abstain.
func hasHeader(lines []string, delim string) bool {
	if len(lines) < 2 {
		return false
	}
	header := ncprep.SplitFields(lines[0], delim)
	data := make([][]string, 0, len(lines)-1)
	for _, l := range lines[1:] {
		row := ncprep.SplitFields(l, delim)
		if len(row) == len(header) {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return false
	}
	votes := 0
	for col, h := range header {
		numeric, sameLen := true, true
		length := len(data[0][col])
		for _, row := range data {
			if !isNumber(row[col]) {
				numeric = false
			}
			if len(row[col]) != length {
				sameLen = false
			}
		}
		switch {
		case numeric:
			if isNumber(h) {
				votes--
			} else {
				votes++
			}
		case sameLen:
			if len(h) == length {
				votes--
			} else {
				votes++
			}
		}
	}
	return votes > 0
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
