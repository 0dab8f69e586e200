package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/coursebin/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusLabel returns a human-readable label for an entity status.
func StatusLabel(s domain.EntityStatus) string {
	switch s {
	case domain.StatusPublished:
		return "Published"
	case domain.StatusActive:
		return "Active"
	case domain.StatusInactive:
		return "Inactive"
	case domain.StatusArchived:
		return "Archived"
	case domain.StatusSuspended:
		return "Suspended"
	case domain.StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// StatusStyle returns the lipgloss style for an entity status.
func StatusStyle(s domain.EntityStatus) lipgloss.Style {
	switch s {
	case domain.StatusPublished, domain.StatusActive:
		return StyleGreen
	case domain.StatusArchived:
		return StyleDim
	case domain.StatusSuspended:
		return StyleRed
	case domain.StatusCompleted:
		return StyleBlue
	default:
		return StyleYellow
	}
}
