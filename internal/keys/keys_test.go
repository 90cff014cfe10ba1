package keys

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterRendersBackspace(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.TypeText("ab"); err != nil {
		t.Fatalf("type: %v", err)
	}
	if err := w.PressKey(Backspace); err != nil {
		t.Fatalf("press: %v", err)
	}
	if err := w.PressKey("shift"); err != nil {
		t.Fatalf("press shift: %v", err)
	}
	if got := buf.String(); got != "ab\b \b" {
		t.Fatalf("unexpected output %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriterWrapsErrors(t *testing.T) {
	w := NewWriter(failingWriter{})
	err := w.TypeText("x")
	if err == nil || !strings.Contains(err.Error(), "closed") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

var _ Injector = (*Writer)(nil)
