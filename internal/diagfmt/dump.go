package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	dumpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	dumpTitleStyle  = lipgloss.NewStyle().Bold(true)
	dumpGutterStyle = lipgloss.NewStyle().Faint(true)
)

// DumpSource prints the fully-assembled synthetic source with line
// numbers inside a box-drawing border. Purely observational output for
// the verbosity flag; it never affects a verdict.
func DumpSource(w io.Writer, title, src string) {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	gutter := len(fmt.Sprintf("%d", len(lines)))

	width := 0
	for _, line := range lines {
		if lw := runewidth.StringWidth(line); lw > width {
			width = lw
		}
	}

	var b strings.Builder
	b.WriteString(dumpTitleStyle.Render(title))
	for i, line := range lines {
		b.WriteString("\n")
		b.WriteString(dumpGutterStyle.Render(fmt.Sprintf("%*d │ ", gutter, i+1)))
		b.WriteString(runewidth.FillRight(line, width))
	}
	fmt.Fprintln(w, dumpBoxStyle.Render(b.String()))
}
