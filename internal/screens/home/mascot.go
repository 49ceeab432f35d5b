package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: streak of 3+ days
	MascotSleepy                           // Dim, closed eyes: nothing to study yet
)

const mascotIdle = ` ___ ___
|   |   |
| ◉ | ◉ |
|___▽___|`

const mascotCelebrating = ` ___ ___
|   |   |
| ★ | ★ |
|___▿___|
  \o/`

const mascotSleepy = ` ___ ___
|   |   |  z
| − | − | z
|___▽___|`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	var fg color.Color = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the variant for the home dashboard.
func mascotFor(streak, materials int) MascotVariant {
	switch {
	case materials == 0:
		return MascotSleepy
	case streak >= 3:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
