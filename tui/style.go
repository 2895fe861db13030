package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/dragonsrealm/engine/state"
	"github.com/nathoo/dragonsrealm/render"
	"github.com/nathoo/dragonsrealm/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("94")).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleAdminBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("124")).
			Foreground(lipgloss.Color("231")).
			Bold(true).
			Padding(0, 1)

	styleHealth = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	styleMana   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleGold   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	styleSystem     = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	stylePlayerName = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	styleNPCName    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	styleNotice     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleTrace      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Map cell styles by kind.
var (
	styleWall      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFloor     = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	styleFurniture = lipgloss.NewStyle().Foreground(lipgloss.Color("137"))
	styleTorch     = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	stylePortal    = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	styleNPC       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	stylePlayer    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleWalking   = stylePlayer.Background(lipgloss.Color("22"))
)

var rarityColors = map[types.Rarity]lipgloss.Color{
	types.Common:    lipgloss.Color("250"),
	types.Uncommon:  lipgloss.Color("34"),
	types.Rare:      lipgloss.Color("33"),
	types.Epic:      lipgloss.Color("129"),
	types.Legendary: lipgloss.Color("214"),
}

// rarityStyle colours item names by rarity.
func rarityStyle(r types.Rarity) lipgloss.Style {
	c, ok := rarityColors[r]
	if !ok {
		c = lipgloss.Color("250")
	}
	return lipgloss.NewStyle().Foreground(c)
}

var titleCaser = cases.Title(language.Und)

// label title-cases an enum tag for display: "uncommon" -> "Uncommon".
func label(tag string) string {
	return titleCaser.String(tag)
}

// cellStyle picks the style for one projected map cell.
func cellStyle(c render.Cell) lipgloss.Style {
	switch c.Kind {
	case render.KindWall:
		return styleWall
	case render.KindFurniture:
		if c.Furniture == types.FurnitureTorch {
			return styleTorch
		}
		return styleFurniture
	case render.KindPortal:
		return stylePortal
	case render.KindDropped:
		return rarityStyle(c.Rarity).Bold(true)
	case render.KindNPC:
		return styleNPC
	case render.KindPlayer:
		if c.Walking {
			return styleWalking
		}
		return stylePlayer
	default:
		return styleFloor
	}
}

// styledMap paints the projected room.
func styledMap(m render.Map) string {
	rows := make([]string, 0, m.Height)
	for _, row := range m.Rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(cellStyle(c).Render(string(c.Glyph)))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// nameStyle picks the chat name colour for a sender.
func nameStyle(playerID, selfID string) lipgloss.Style {
	switch playerID {
	case state.SystemID:
		return styleSystem
	case selfID:
		return stylePlayerName
	default:
		return styleNPCName
	}
}
