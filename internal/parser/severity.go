package parser

import "github.com/deepgram/siplog/internal/model"

// severityTokens is the closed table of recognized level spellings.
// Matching is exact and case-sensitive: lower-case words like "error"
// in the middle of a message are not level indicators.
var severityTokens = map[string]model.Severity{
	"ERROR": model.Error,
	"WARN":  model.Warn,
	"INFO":  model.Info,
	"DEBUG": model.Debug,
	"TRACE": model.Trace,
	// alternate spellings seen in the wild
	"ERR":     model.Error,
	"WARNING": model.Warn,
	"CONSOLE": model.Debug,
	"NOTICE":  model.Trace,
}

// ClassifySeverity maps a free-text token to a Severity. The boolean
// is false when the token is not a recognized level spelling; that is
// a normal negative result, not an error.
func ClassifySeverity(token string) (model.Severity, bool) {
	s, ok := severityTokens[token]
	return s, ok
}

// ClassifyNumericLevel maps a bunyan numeric level code to a Severity.
// Codes 20/30/40 map exactly and 50 and above are Error; everything
// else (10 included) falls back to Trace so a record never fails to
// render over an odd level code.
func ClassifyNumericLevel(n int) model.Severity {
	switch {
	case n >= 50:
		return model.Error
	case n == 40:
		return model.Warn
	case n == 30:
		return model.Info
	case n == 20:
		return model.Debug
	default:
		return model.Trace
	}
}
