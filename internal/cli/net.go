package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/notation"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[cube.Color]lipgloss.Color{
	cube.White:  lipgloss.Color("15"),
	cube.Yellow: lipgloss.Color("11"),
	cube.Green:  lipgloss.Color("10"),
	cube.Blue:   lipgloss.Color("12"),
	cube.Red:    lipgloss.Color("9"),
	cube.Orange: lipgloss.Color("208"),
	cube.None:   lipgloss.Color("0"),
}

func sticker(c cube.Color, highlight bool) string {
	style := lipgloss.NewStyle().Background(stickerColors[c])
	if highlight {
		return style.Foreground(lipgloss.Color("0")).Render("··")
	}
	return style.Render("  ")
}

// renderNet draws the unfolded cube. Facelets of the highlighted face get a
// marker.
func renderNet(s cube.State, highlight cube.Face, marked bool) string {
	var b strings.Builder

	row := func(f cube.Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(sticker(s.Facelet(f, r*3+col), marked && f == highlight))
		}
		b.WriteString(" ")
	}

	pad := strings.Repeat(" ", 7)
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cube.U, r)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for r := 0; r < 3; r++ {
		for _, f := range []cube.Face{cube.L, cube.F, cube.R, cube.B} {
			row(f, r)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for r := 0; r < 3; r++ {
		b.WriteString(pad)
		row(cube.D, r)
		b.WriteString("\n")
	}

	return b.String()
}

// recentTurns formats the last n turns with same-face runs folded.
func recentTurns(turns []cube.Turn, n int) string {
	if len(turns) == 0 {
		return ""
	}
	prefix := ""
	if len(turns) > n {
		turns = turns[len(turns)-n:]
		prefix = "... "
	}
	return prefix + notation.Compact(turns)
}
