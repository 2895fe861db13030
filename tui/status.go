package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dragonsrealm/engine"
)

// bar draws a fixed-width meter such as "[#####.....]". max <= 0 renders empty.
func bar(cur, max, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := 0
	if max > 0 {
		if cur > max {
			cur = max
		}
		if cur > 0 {
			filled = cur * width / max
			if filled == 0 {
				filled = 1
			}
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// renderStatusBar shows room, position and gold on the left and the admin
// badge on the right.
func renderStatusBar(snap engine.Snapshot, width int) string {
	p := snap.Player
	left := fmt.Sprintf(" %s (%d, %d) | Gold: %s", snap.Room.Name, p.Position.X, p.Position.Y,
		styleGold.Render(fmt.Sprint(snap.Gold)))
	right := ""
	if snap.Admin {
		right = styleAdminBadge.Render("ADMIN")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styleStatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

const barWidth = 12

// renderSidePanel lists vitals and the inventory. selected marks the
// highlighted stack; out of range means none.
func renderSidePanel(snap engine.Snapshot, selected int) string {
	p := snap.Player
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s  Lv %d", p.Name, p.Level)))
	b.WriteString("\n")
	b.WriteString(styleHealth.Render(fmt.Sprintf("HP %s %d/%d", bar(p.Health, p.MaxHealth, barWidth), p.Health, p.MaxHealth)))
	b.WriteString("\n")
	b.WriteString(styleMana.Render(fmt.Sprintf("MP %s %d/%d", bar(p.Mana, p.MaxMana, barWidth), p.Mana, p.MaxMana)))
	b.WriteString("\n\n")
	b.WriteString(styleTitle.Render("Inventory"))
	b.WriteString("\n")
	if len(snap.Inventory) == 0 {
		b.WriteString(styleDim.Render("(empty)"))
	}
	for i, it := range snap.Inventory {
		cursor := "  "
		if i == selected {
			cursor = styleCursor.Render("> ")
		}
		name := rarityStyle(it.Rarity).Render(it.Name)
		fmt.Fprintf(&b, "%s%s x%d %s", cursor, name, it.Quantity, styleDim.Render(label(it.Type.String())))
		if i < len(snap.Inventory)-1 {
			b.WriteString("\n")
		}
	}
	return stylePanel.Render(b.String())
}
