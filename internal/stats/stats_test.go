package stats

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

func TestThroughput(t *testing.T) {
	wpm, cpm := Throughput(300, time.Minute)
	if wpm != 60 || cpm != 300 {
		t.Fatalf("unexpected throughput %.2f wpm %.2f cpm", wpm, cpm)
	}
	if wpm, cpm := Throughput(10, 0); wpm != 0 || cpm != 0 {
		t.Fatalf("expected zero throughput without elapsed time")
	}
}

func TestProgress(t *testing.T) {
	if Progress(1, 4) != 0.25 || Progress(0, 0) != 1 || Progress(9, 4) != 1 {
		t.Fatalf("unexpected progress values")
	}
}

func TestRenderReportCompleted(t *testing.T) {
	start := time.Unix(0, 0)
	var buf bytes.Buffer
	err := RenderReport(&buf, model.Report{
		Outcome:   model.OutcomeCompleted,
		Typed:     100,
		StartedAt: start,
		EndedAt:   start.Add(30 * time.Second),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[Completed] All text has been typed.") {
		t.Fatalf("missing completion line: %s", out)
	}
	if !strings.Contains(out, "40.0 WPM") {
		t.Fatalf("missing throughput: %s", out)
	}
}

func TestRenderReportStoppedShowsLeftover(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, model.Report{Outcome: model.OutcomeStopped, Typed: 2, Leftover: "cdef"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "NOT typed yet:\ncdef\n") {
		t.Fatalf("missing leftover: %q", buf.String())
	}
}

func TestRenderReportFailed(t *testing.T) {
	var buf bytes.Buffer
	rep := model.Report{Outcome: model.OutcomeFailed, Leftover: "xyz", Err: errors.New("display closed")}
	if err := RenderReport(&buf, rep); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "[Failed] display closed") || !strings.Contains(buf.String(), "xyz") {
		t.Fatalf("unexpected failure report: %q", buf.String())
	}
}

func TestRenderSnippets(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSnippets(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if buf.String() != "No snippets found.\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
	buf.Reset()
	snips := []model.Snippet{{Name: "sig", Text: "Best\nregards", UpdatedAt: time.Now()}}
	if err := RenderSnippets(&buf, snips); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Best regards") {
		t.Fatalf("expected flattened preview: %q", buf.String())
	}
}

func TestPreviewTruncates(t *testing.T) {
	if got := Preview("hello  world\nagain", 8); got != "hello w…" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := Preview("short", 10); got != "short" {
		t.Fatalf("unexpected preview %q", got)
	}
}
