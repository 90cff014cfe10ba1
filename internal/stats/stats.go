// Package stats contains throughput calculations and report rendering.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

const previewRunes = 40

// Throughput computes words and characters per minute for typed runes over
// elapsed time.
func Throughput(typed int, elapsed time.Duration) (wpm, cpm float64) {
	if elapsed <= 0 || typed <= 0 {
		return 0, 0
	}
	minutes := elapsed.Minutes()
	cpm = float64(typed) / minutes
	wpm = cpm / 5.0
	return wpm, cpm
}

// Progress returns the completed share of a text in [0, 1].
func Progress(cursor, total int) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(cursor) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// RenderReport prints the end-of-session report.
func RenderReport(w io.Writer, rep model.Report) error {
	lines := []string{"", "=========="}
	switch rep.Outcome {
	case model.OutcomeCompleted:
		lines = append(lines, "[Completed] All text has been typed.")
	case model.OutcomeStopped:
		lines = append(lines, "[Stopped] The following text was NOT typed yet:", rep.Leftover)
	case model.OutcomeFailed:
		lines = append(lines, fmt.Sprintf("[Failed] %v", rep.Err), "The following text was NOT typed yet:", rep.Leftover)
	}
	wpm, _ := Throughput(rep.Typed, rep.Duration())
	lines = append(lines, fmt.Sprintf("Typed %d chars in %s (%.1f WPM, %d mistakes)",
		rep.Typed, rep.Duration().Round(100*time.Millisecond), wpm, rep.Mistakes))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSnippets prints the snippet library as a table.
func RenderSnippets(w io.Writer, snippets []model.Snippet) error {
	if len(snippets) == 0 {
		_, err := fmt.Fprintln(w, "No snippets found.")
		return err
	}
	headers := []string{"Name", "Chars", "Updated", "Preview"}
	rows := make([][]string, 0, len(snippets))
	for _, s := range snippets {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", len([]rune(s.Text))),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
			Preview(s.Text, previewRunes),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// EstimateRow is one line of the estimate table.
type EstimateRow struct {
	Label string
	Value string
}

// RenderEstimate prints a two-column key/value table.
func RenderEstimate(w io.Writer, rows []EstimateRow) error {
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{r.Label, r.Value})
	}
	for _, line := range formatTable(nil, tableRows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Preview flattens text to one line and truncates it to n runes.
func Preview(text string, n int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if n <= 0 || len(runes) <= n {
		return flat
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
