package parser

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/deepgram/siplog/internal/model"
)

const (
	// timestampLayout accepts a fractional part of any precision,
	// or none at all.
	timestampLayout = "2006-01-02 15:04:05.999999999"

	// TimestampFormat is the canonical output layout: exactly three
	// fractional digits, local time, no zone offset.
	TimestampFormat = "2006-01-02 15:04:05.000"
)

// tokenize splits a raw line on single spaces. Runs of spaces produce
// empty tokens on purpose: joining the survivors back with single
// spaces then reproduces the original spacing of unextracted text.
func tokenize(line string) []string {
	return strings.Split(line, " ")
}

// reassemble joins the remaining tokens back into the message text.
func reassemble(tokens []string) string {
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// exclude returns a copy of tokens without the elements at the given
// indices. Scans find positions against a stable slice and excise
// afterwards; nothing shrinks underfoot mid-iteration.
func exclude(tokens []string, indices ...int) []string {
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		skip := false
		for _, idx := range indices {
			if i == idx {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, tok)
		}
	}
	return out
}

// extractLocation scans left to right for the first "path:line" token,
// optionally bracket-wrapped. Exactly one colon with an integer after
// it is required, which keeps timestamps and URLs from matching. The
// matched token is returned verbatim, brackets and all.
func extractLocation(tokens []string) (string, []string, bool) {
	for i, tok := range tokens {
		candidate := strings.TrimPrefix(tok, "[")
		candidate = strings.TrimSuffix(candidate, "]")
		_, lineNum, found := strings.Cut(candidate, ":")
		if !found || strings.Contains(lineNum, ":") {
			continue
		}
		if _, err := strconv.Atoi(lineNum); err != nil {
			continue
		}
		return tok, exclude(tokens, i), true
	}
	return "", tokens, false
}

// levelStrip removes the decoration level tokens tend to carry,
// e.g. "[ERROR]" or "WARN:".
var levelStrip = strings.NewReplacer("[", "", "]", "", ":", "")

// extractSeverity feeds each token, stripped of brackets and colons,
// through the classification table until one matches. No match leaves
// the tokens untouched and yields the Info default.
func extractSeverity(tokens []string) (model.Severity, []string, bool) {
	for i, tok := range tokens {
		if s, ok := ClassifySeverity(levelStrip.Replace(tok)); ok {
			return s, exclude(tokens, i), true
		}
	}
	return model.Info, tokens, false
}

// asciiHalf strips non-ASCII runes and stray brackets from one half of
// a timestamp candidate.
func asciiHalf(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		if r > unicode.MaxASCII || r == '[' || r == ']' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// extractTimestamp scans adjacent token pairs for a "date time"
// candidate and parses it in the local zone. The first pair that
// parses wins and both of its tokens are removed.
func extractTimestamp(tokens []string) (time.Time, []string, bool) {
	for i := 0; i+1 < len(tokens); i++ {
		candidate := asciiHalf(tokens[i]) + " " + asciiHalf(tokens[i+1])
		ts, err := time.ParseInLocation(timestampLayout, candidate, time.Local)
		if err != nil {
			continue
		}
		return ts, exclude(tokens, i, i+1), true
	}
	return time.Time{}, tokens, false
}
