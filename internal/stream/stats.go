package stream

import (
	"github.com/phuslu/log"

	"github.com/deepgram/siplog/internal/model"
)

// Stats counts rendered lines per severity. The pump is synchronous,
// so plain counters suffice. Counts feed the diagnostic log only and
// never influence per-line output.
type Stats struct {
	total  int64
	counts map[model.Severity]int64
}

func newStats() Stats {
	return Stats{counts: make(map[model.Severity]int64)}
}

func (s *Stats) record(sev model.Severity) {
	s.total++
	s.counts[sev]++
}

// report logs the totals once the stream ends.
func (s *Stats) report() {
	log.Debug().
		Int64("lines", s.total).
		Int64("error", s.counts[model.Error]).
		Int64("warn", s.counts[model.Warn]).
		Int64("info", s.counts[model.Info]).
		Int64("debug", s.counts[model.Debug]).
		Int64("trace", s.counts[model.Trace]).
		Msg("stream totals")
}
