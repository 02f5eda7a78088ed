// Package ui renders CLI output: styled messages, tables, listings and
// prompts. Everything goes through Stdout and Stderr so tests can capture it.
package ui

import "github.com/charmbracelet/lipgloss"

// Message styles.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0099FF"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// Listing styles.
var (
	DirStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0099FF"))
	// PinnedStyle marks entries placed by a .sort record rather than by name
	PinnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

// Entry icons.
var (
	FolderIcon = "📁"
	NoteIcon   = "📝"
	// LinkIcon marks a symlink whose target is gone
	LinkIcon = "🔗"
	StarIcon = "⭐"
)

// Message icons, shown before the text of Success, Error, Info and Warning.
var (
	SuccessIcon = "✅"
	ErrorIcon   = "❌"
	InfoIcon    = "ⓘ"
	WarningIcon = "⚠️"
)
