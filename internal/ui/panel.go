package ui

import (
	"fmt"
	"os"
	"strings"
)

// OK prints a success line to stdout.
func (t Theme) OK(msg string) {
	fmt.Println(t.Success.Render(t.SymOK + " " + msg))
}

// Fail prints an error line to stderr.
func (t Theme) Fail(msg string) {
	fmt.Fprintln(os.Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Panel draws a framed box around the given lines.
func (t Theme) Panel(lines []string) string {
	return t.Border.Render(strings.Join(lines, "\n"))
}

// ProgressBar renders a Unicode progress bar with a count suffix.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}
