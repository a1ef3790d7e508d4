package promo

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/adreel/internal/anim"
)

// Brand colours.
const (
	Primary      = "#6366f1"
	PrimaryDark  = "#4f46e5"
	PrimaryLight = "#818cf8"
	Accent       = "#a855f7"
	AccentLight  = "#c084fc"
	Dark         = "#0f0d1a"
	Darker       = "#080612"
	White        = "#ffffff"
	Gray         = "#9ca3af"
	GrayLight    = "#e5e7eb"
	Danger       = "#ef4444"
	Warning      = "#f59e0b"
	Success      = "#22c55e"
)

// alpha appends a two-digit hex alpha to an opaque "#rrggbb" colour.
func alpha(color, a string) string { return color + a }

func mustColor(hex string) colorful.Color {
	c, _, err := anim.ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
