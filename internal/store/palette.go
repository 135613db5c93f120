package store

import "github.com/charmbracelet/lipgloss"

// Palette is the fixed series color cycle (Set1 from matplotlib).
// Colors are assigned by series creation order and advanced per series
// by CycleColor.
var Palette = []lipgloss.Color{
	lipgloss.Color("#e41a1c"),
	lipgloss.Color("#377eb8"),
	lipgloss.Color("#4daf4a"),
	lipgloss.Color("#984ea3"),
	lipgloss.Color("#ff7f00"),
	lipgloss.Color("#ffff33"),
	lipgloss.Color("#a65628"),
	lipgloss.Color("#f781bf"),
	lipgloss.Color("#999999"),
}
