package parser

import (
	"strings"
	"time"

	"github.com/deepgram/siplog/internal/model"
)

// Parser converts one raw input line into a normalized Entry.
type Parser interface {
	Parse(raw string) model.Entry
}

// NormalizeParser tries the structured fast path first, then falls
// back to scanning whitespace tokens: source location, then level,
// then timestamp, each scan removing what it claimed before the next
// runs. The order matters — a bracketed file:42 must not be eaten as
// half a timestamp, and a bare numeric level must not read as a
// location.
//
// Each call is a pure function of the line plus the wall clock; no
// state survives between lines.
type NormalizeParser struct {
	bunyan *BunyanParser
	now    func() time.Time
}

func NewNormalizeParser() *NormalizeParser {
	return &NormalizeParser{
		bunyan: NewBunyanParser(),
		now:    time.Now,
	}
}

func (p *NormalizeParser) Parse(raw string) model.Entry {
	if rec, ok := p.bunyan.TryParse(raw); ok {
		return recordEntry(rec)
	}
	return p.parseText(raw)
}

// parseText runs the free-text scans and fills defaults: Info when no
// level token matched, the current local time when no timestamp pair
// matched.
func (p *NormalizeParser) parseText(raw string) model.Entry {
	tokens := tokenize(strings.TrimSpace(raw))

	location, tokens, _ := extractLocation(tokens)
	severity, tokens, _ := extractSeverity(tokens)
	ts, tokens, found := extractTimestamp(tokens)
	if !found {
		ts = p.now()
	}

	return model.Entry{
		Severity:  severity,
		Timestamp: ts.Format(TimestampFormat),
		Location:  location,
		Message:   reassemble(tokens),
	}
}
