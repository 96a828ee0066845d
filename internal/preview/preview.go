//Package preview draws pixel rows on a color terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/DerLukas15/ledwire"
	"github.com/charmbracelet/lipgloss"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Width(12)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

//Cell renders one pixel as a colored block.
func Cell(c ledwire.RGB) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%06X", c.UInt32()))).
		Render("  ")
}

//Row renders name followed by one block per pixel. Rows longer than max are cut; max <= 0
//shows everything.
func Row(name string, leds []ledwire.RGB, max int) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(name))
	shown := leds
	if max > 0 && len(shown) > max {
		shown = shown[:max]
	}
	for _, c := range shown {
		b.WriteString(Cell(c))
	}
	if len(shown) < len(leds) {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" +%d", len(leds)-len(shown))))
	}
	return b.String()
}

//Frame renders lanes under one name, one row per lane.
func Frame(name string, lanes [][]ledwire.RGB, max int) string {
	if len(lanes) == 1 {
		return Row(name, lanes[0], max)
	}
	rows := make([]string, len(lanes))
	for i, l := range lanes {
		rows[i] = Row(fmt.Sprintf("%s/%d", name, i), l, max)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
