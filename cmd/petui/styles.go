package main

import (
	"github.com/charmbracelet/lipgloss"

	"battlepets/petlookup"
)

// All styles use ANSI colors 0–15 so they follow the terminal's theme.

var (
	// Status bar
	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.ANSIColor(11)).
			Reverse(true).
			Padding(0, 1)

	// Help bar
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8))
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(7))

	// Form rows
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(7)).Width(10)
	labelFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(11)).Bold(true).Width(10)
	arrowStyle        = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8))
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)).Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(0)).
			Background(lipgloss.ANSIColor(4)).
			Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.ANSIColor(8)).
				Background(lipgloss.ANSIColor(0)).
				Padding(0, 1)

	// Results
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.ANSIColor(15))
	cursorStyle  = lipgloss.NewStyle().Reverse(true).Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)).Underline(true)

	// Values
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)).Bold(true) // Yellow
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2))            // Green
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4))            // Blue
	nullStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8))            // Dark gray
	trueStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(10))           // Bright green
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(1))            // Red

	// Errors and loading
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(9)).Bold(true)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)).Italic(true)

	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8))
)

// family colors, roughly matching the in-game palette
var typeStyles = map[petlookup.PetType]lipgloss.Style{
	petlookup.Aquatic:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
	petlookup.Beast:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(1)),
	petlookup.Critter:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
	petlookup.Dragonkin:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(10)),
	petlookup.Elemental:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(11)),
	petlookup.Flying:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(14)),
	petlookup.Humanoid:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(12)),
	petlookup.Magic:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(13)),
	petlookup.Mechanical: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(7)),
	petlookup.Undead:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(5)),
}

func renderType(t petlookup.PetType) string {
	if s, ok := typeStyles[t]; ok {
		return s.Render(string(t))
	}
	return string(t)
}
