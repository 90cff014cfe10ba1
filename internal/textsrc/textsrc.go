// Package textsrc loads the text to type from files or stdin.
package textsrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Load reads the text at path, or stdin when path is "-".
func Load(path string, stdin io.Reader) (string, error) {
	if path == Stdin {
		return Read(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text file.
			_ = cerr
		}
	}()
	return Read(file)
}

// Read reads all lines from r, normalising line endings and dropping the
// trailing newline most editors append.
func Read(r io.Reader) (string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is empty")
	}
	return Sanitize(text), nil
}

// Sanitize drops control characters other than newline and tab, which
// cannot be typed as single keystrokes.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
}
