package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDays prints whole days without decimals and fractions with up to
// two places, e.g. "5", "2.5", "0.25".
func FormatDays(d float64) string {
	return strconv.FormatFloat(decimal.NewFromFloat(d).Round(2).InexactFloat64(), 'f', -1, 64)
}

// FormatPercent prints a percentage with at most one decimal place.
func FormatPercent(p decimal.Decimal) string {
	return p.Round(1).String() + "%"
}

// FormatDate returns "Jan 2, 2006", or a dim placeholder for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("Jan 2, 2006")
}

// Label renders a fixed-width dim label followed by value.
func Label(label string, width int, value string) string {
	pad := strings.Repeat(" ", max(0, width-len(label)))
	return StyleDim.Render(strings.ToUpper(label)+pad) + "  " + value
}
