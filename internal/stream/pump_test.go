package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/deepgram/siplog/internal/model"
	"github.com/deepgram/siplog/internal/parser"
)

// captureRenderer records entries instead of writing to a stream.
type captureRenderer struct {
	entries  []model.Entry
	err      error
	onRender func()
}

func (c *captureRenderer) Render(entry model.Entry) error {
	if c.err != nil {
		return c.err
	}
	c.entries = append(c.entries, entry)
	if c.onRender != nil {
		c.onRender()
	}
	return nil
}

func TestPumpOneEntryPerLine(t *testing.T) {
	input := strings.Join([]string{
		"ERROR something broke",
		"plain line",
		`{"level":30,"time":1000,"msg":"up","pid":1,"hostname":"h","v":0}`,
	}, "\n") + "\n"

	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	if len(sink.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sink.entries))
	}
	if sink.entries[0].Severity != model.Error {
		t.Errorf("expected Error, got %v", sink.entries[0].Severity)
	}
	if sink.entries[1].Message != "plain line" {
		t.Errorf("expected 'plain line', got %q", sink.entries[1].Message)
	}
	if sink.entries[2].Message != "up" {
		t.Errorf("expected structured message 'up', got %q", sink.entries[2].Message)
	}
}

func TestPumpRendersBlankLines(t *testing.T) {
	input := "one\n\n   \ntwo\n"

	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	// one rendered line per input line, blank ones included
	if len(sink.entries) != 4 {
		t.Fatalf("expected 4 entries for 4 input lines, got %d", len(sink.entries))
	}
	for _, i := range []int{1, 2} {
		if sink.entries[i].Message != "" {
			t.Errorf("entries[%d]: expected empty message, got %q", i, sink.entries[i].Message)
		}
		if sink.entries[i].Severity != model.Info {
			t.Errorf("entries[%d]: expected default Info, got %v", i, sink.entries[i].Severity)
		}
	}
}

func TestPumpRendersFinalLineWithoutNewline(t *testing.T) {
	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(context.Background(), strings.NewReader("no trailing newline")); err != nil {
		t.Fatal(err)
	}

	if len(sink.entries) != 1 {
		t.Fatalf("expected the partial final line rendered, got %d entries", len(sink.entries))
	}
	if sink.entries[0].Message != "no trailing newline" {
		t.Errorf("unexpected message %q", sink.entries[0].Message)
	}
}

func TestPumpHandlesVeryLongLines(t *testing.T) {
	long := "ERROR " + strings.Repeat("x", 2<<20)

	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(context.Background(), strings.NewReader(long+"\n")); err != nil {
		t.Fatal(err)
	}

	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sink.entries))
	}
	if sink.entries[0].Severity != model.Error {
		t.Errorf("expected Error, got %v", sink.entries[0].Severity)
	}
	if len(sink.entries[0].Message) != 2<<20 {
		t.Errorf("expected full message preserved, got %d bytes", len(sink.entries[0].Message))
	}
}

func TestPumpCleanEndOfStream(t *testing.T) {
	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	// empty input: scanner exhausts immediately, clean return
	if err := pump.Run(context.Background(), strings.NewReader("")); err != nil {
		t.Errorf("expected nil on end of stream, got %v", err)
	}
}

// failingReader yields one line and then a read error.
type failingReader struct {
	data string
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		return copy(p, f.data), nil
	}
	return 0, errors.New("device unplugged")
}

func TestPumpReadErrorSurfaces(t *testing.T) {
	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	err := pump.Run(context.Background(), &failingReader{data: "one line\n"})
	if err == nil {
		t.Fatal("expected a read error")
	}
	if len(sink.entries) != 1 {
		t.Errorf("expected the complete line rendered before the failure, got %d", len(sink.entries))
	}
}

func TestPumpRenderErrorStops(t *testing.T) {
	sink := &captureRenderer{err: io.ErrClosedPipe}
	pump := New(parser.NewNormalizeParser(), sink)

	err := pump.Run(context.Background(), strings.NewReader("one\ntwo\n"))
	if err == nil {
		t.Fatal("expected a render error")
	}
}

func TestPumpStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &captureRenderer{}
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(ctx, strings.NewReader("one\ntwo\nthree\n")); err != nil {
		t.Fatal(err)
	}
	if len(sink.entries) != 0 {
		t.Errorf("expected no entries after cancellation, got %d", len(sink.entries))
	}
}

func TestPumpRendersInFlightLineOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// cancel while the first line is being rendered; the loop must
	// finish that line and stop before reading the next
	sink := &captureRenderer{}
	sink.onRender = cancel
	pump := New(parser.NewNormalizeParser(), sink)

	if err := pump.Run(ctx, strings.NewReader("one\ntwo\nthree\n")); err != nil {
		t.Fatal(err)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected exactly the in-flight line rendered, got %d entries", len(sink.entries))
	}
	if sink.entries[0].Message != "one" {
		t.Errorf("expected 'one', got %q", sink.entries[0].Message)
	}
}
