package parser

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/deepgram/siplog/internal/model"
)

// BunyanParser handles single-line JSON records in the bunyan wire
// shape. A line that deviates from the schema in any way — bad JSON, a
// missing required field, a mistyped or unknown field — is simply not
// structured; the whole original line falls through to the free-text
// path and nothing is lost.
type BunyanParser struct{}

func NewBunyanParser() *BunyanParser { return &BunyanParser{} }

// TryParse decodes one structured record. The boolean is false when
// the line is not a well-formed record of the expected shape.
func (p *BunyanParser) TryParse(line string) (model.StructuredRecord, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.StructuredRecord{}, false
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var rec model.StructuredRecord
	if err := dec.Decode(&rec); err != nil {
		return model.StructuredRecord{}, false
	}
	if dec.More() {
		// trailing content after the object
		return model.StructuredRecord{}, false
	}
	if rec.V == nil || rec.Level == nil || rec.Pid == nil ||
		rec.Hostname == nil || rec.Time == nil || rec.Msg == nil {
		return model.StructuredRecord{}, false
	}
	if *rec.V < 0 || *rec.Level < 0 || *rec.Pid < 0 {
		return model.StructuredRecord{}, false
	}
	return rec, true
}

// recordEntry converts a structured record into a normalized entry.
// The epoch-millisecond time goes through the same canonical
// formatting as extracted free-text timestamps.
func recordEntry(rec model.StructuredRecord) model.Entry {
	ts := time.UnixMilli(*rec.Time).In(time.Local)
	return model.Entry{
		Severity:  ClassifyNumericLevel(*rec.Level),
		Timestamp: ts.Format(TimestampFormat),
		Message:   *rec.Msg,
		Extras:    recordExtras(rec),
	}
}

// recordExtras collects the auxiliary fields in their fixed render
// order. Required fields always appear; absent optional fields are
// omitted with no placeholder.
func recordExtras(rec model.StructuredRecord) []model.Field {
	extras := []model.Field{
		{Key: "v", Value: strconv.Itoa(*rec.V)},
		{Key: "pid", Value: strconv.Itoa(*rec.Pid)},
		{Key: "hostname", Value: strings.TrimSpace(*rec.Hostname)},
	}
	opt := func(key string, val *string) {
		if val != nil {
			extras = append(extras, model.Field{Key: key, Value: strings.TrimSpace(*val)})
		}
	}
	opt("type", rec.Type)
	opt("stack", rec.Stack)
	opt("errno", rec.Errno)
	opt("syscall", rec.Syscall)
	opt("address", rec.Address)
	if rec.Port != nil {
		extras = append(extras, model.Field{Key: "port", Value: strconv.FormatUint(uint64(*rec.Port), 10)})
	}
	opt("secret", rec.Secret)
	return extras
}
