// Package tui runs match-3 modes in Bubble Tea: the fixed-rate frame loop,
// key and mouse mapping, the menu and scoreboard, and the SSH server.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

const defaultTickRate = 60

// TickMsg advances the game by one frame.
type TickMsg time.Time

func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Tile colors follow the board's cell types; the rest is HUD chrome.
var palette = [...]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRed:       fg("196"),
	core.ColorGreen:     fg("46"),
	core.ColorBlue:      fg("33"),
	core.ColorYellow:    fg("226"),
	core.ColorPurple:    fg("129"),
	core.ColorOrange:    fg("208"),
	core.ColorWhite:     fg("15"),
	core.ColorGray:      fg("245"),
	core.ColorDim:       fg("241"),
	core.ColorHighlight: fg("229").Bold(true),
	core.ColorTarget:    fg("51"),
	core.ColorFrame:     fg("240"),
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a screen buffer to a styled string. Runs of cells
// sharing a color are rendered with one style call.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var out strings.Builder
	out.Grow(w*h*2 + h)
	run := make([]rune, 0, w)

	for y := range h {
		if y > 0 {
			out.WriteByte('\n')
		}
		run = run[:0]
		cur := s.GetCell(0, y).Color
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != cur {
				out.WriteString(styleFor(cur).Render(string(run)))
				run, cur = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			out.WriteString(styleFor(cur).Render(string(run)))
		}
	}
	return out.String()
}
