// Package theme provides the Lip Gloss color palette and reusable styles
// for the MuSheet admin console. It is a leaf package with no internal
// imports to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	ColorPrimary = lipgloss.Color("#6366f1")
	ColorAccent  = lipgloss.Color("#06b6d4")
)

// Notification colors.
var (
	ColorSuccess = lipgloss.Color("#16a34a")
	ColorError   = lipgloss.Color("#dc2626")
	ColorInfo    = lipgloss.Color("#2563eb")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// Button variants used by confirmation dialogs.
const (
	VariantDanger  = "danger"
	VariantSuccess = "success"
	VariantPrimary = "primary"
)

// VariantColor returns the button color of a variant, danger by default.
func VariantColor(variant string) lipgloss.Color {
	switch variant {
	case VariantSuccess:
		return ColorSuccess
	case VariantPrimary:
		return ColorPrimary
	default:
		return ColorDanger
	}
}

// Button renders a filled button label.
func Button(label, variant string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright).
		Background(VariantColor(variant)).
		Padding(0, 2).
		Render(label)
}

// Badge renders a small colored tag such as "Admin" or "Disabled".
func Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("[" + text + "]")
}

// StatusBadge renders the active/disabled state of an account.
func StatusBadge(disabled bool) string {
	if disabled {
		return Badge("Disabled", ColorDanger)
	}
	return Badge("Active", ColorHealthy)
}

// RoleBadge renders the admin/user role of an account.
func RoleBadge(isAdmin bool) string {
	if isAdmin {
		return Badge("Admin", ColorPrimary)
	}
	return Badge("User", ColorDimmed)
}

// Reusable styles.
var (
	StyleHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
		Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorError)
)

// Panel returns the shared border style for overlays.
func Panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(ColorBorder)
}
