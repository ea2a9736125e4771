package sanity

import (
	"strings"

	"github.com/dharif23/ncprep"
)

const summaryWidth = 43

// Report writes a summary table of the verdict to log. Passing checks are
// logged at info level, warnings at warn level and failures at error level.
// Report never changes the verdict.
func (v *Verdict) Report(log ncprep.Logger) {
	log.Printf("Sanity check.....COMPLETE")
	log.Printf("%s", banner("Summary"))
	for _, r := range v.Results {
		line := r.Name + "....." + r.Status.String()
		if r.Message != "" {
			line += " (" + r.Message + ")"
		}
		switch r.Status {
		case StatusFail:
			log.Errorf("%s", line)
		case StatusWarn:
			log.Warnf("%s", line)
			if r.Kind == ncprep.DelimiterMismatch {
				log.Warnf("Program might not work as expected if the file does not use the given delimiter")
			}
		default:
			log.Printf("%s", line)
		}
	}
	log.Printf("%s", strings.Repeat("-", summaryWidth))
	if !v.OK() {
		log.Errorf("Sanity check failed!")
	}
}

func banner(title string) string {
	title = " " + title + " "
	left := (summaryWidth - len(title)) / 2
	right := summaryWidth - len(title) - left
	return strings.Repeat("-", left) + title + strings.Repeat("-", right)
}
