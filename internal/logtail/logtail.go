package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LevelStyles colors the level token of a diagnostics line.
type LevelStyles struct {
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
}

var levelTokens = []string{"DEBU", "INFO", "WARN", "ERRO", "FATA"}

// ColorizeLine styles the first level token found in line. Lines without a
// level are returned unchanged.
func ColorizeLine(line string, styles LevelStyles) string {
	fields := strings.Fields(line)
	for _, field := range fields {
		for _, token := range levelTokens {
			if field != token {
				continue
			}
			at := strings.Index(line, " "+token+" ")
			if at < 0 {
				return line
			}
			start := at + 1
			end := start + len(token)
			return line[:start] + styleFor(token, styles).Render(token) + line[end:]
		}
	}
	return line
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string, styles LevelStyles) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line, styles)
	}
	return out
}

func styleFor(token string, styles LevelStyles) lipgloss.Style {
	switch token {
	case "DEBU":
		return styles.Debug
	case "INFO":
		return styles.Info
	case "WARN":
		return styles.Warn
	default:
		return styles.Error
	}
}
