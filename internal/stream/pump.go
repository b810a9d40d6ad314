package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"

	"github.com/deepgram/siplog/internal/output"
	"github.com/deepgram/siplog/internal/parser"
)

// Pump runs the synchronous read-normalize-render loop: one line in
// flight at a time, blocking only on the next read. There is no
// buffering or queueing between stages — the blocking read is the
// backpressure.
type Pump struct {
	parser   parser.Parser
	renderer output.Renderer
	stats    Stats
}

func New(p parser.Parser, r output.Renderer) *Pump {
	return &Pump{parser: p, renderer: r, stats: newStats()}
}

// Run consumes the reader until end of stream, emitting one rendered
// line per input line; a blank line still renders its default header.
// Lines have no length ceiling. Only the zero-byte read at end of
// stream produces no output: that is the clean stop. A read failure is
// surfaced on the diagnostic log and ends the loop with an error. The
// context is checked between lines, so a signal stops the loop at a
// line boundary with the line already read still rendered.
func (p *Pump) Run(ctx context.Context, r io.Reader) error {
	reader := bufio.NewReader(r)

	for ctx.Err() == nil {
		line, err := reader.ReadString('\n')
		if line != "" {
			if rerr := p.emit(strings.TrimSpace(line)); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			p.stats.report()
			if err == io.EOF {
				log.Debug().Msg("input stream ended")
				return nil
			}
			log.Error().Err(err).Msg("reading input stream")
			return fmt.Errorf("read input: %w", err)
		}
	}

	p.stats.report()
	return nil
}

func (p *Pump) emit(line string) error {
	entry := p.parser.Parse(line)
	p.stats.record(entry.Severity)

	if err := p.renderer.Render(entry); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
