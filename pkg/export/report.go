package export

import (
	"time"

	"github.com/vela-sec/vela/internal/message"
)

// Summary describes what one export run produced.
type Summary struct {
	Source     string
	Records    int
	Pages      int
	Failures   int
	OutputFile string
}

// Report prints the closing run report. The start time is handed in by the
// caller rather than read from package state.
func Report(start time.Time, s *Summary) {
	elapsed := time.Since(start).Round(time.Millisecond)
	if s.Failures > 0 {
		message.Warning("%d lookup(s) failed and were skipped", s.Failures)
	}
	message.Info("Exported %d %s record(s) in %s", s.Records, s.Source, elapsed)
}
