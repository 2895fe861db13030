// Package effects applies item effects and stat patches to a player record.
// Every function here mutates only the player it is given.
package effects

import (
	"fmt"
	"strings"

	"github.com/nathoo/dragonsrealm/types"
)

// Applied records what an effect actually changed after clamping.
type Applied struct {
	Health int
	Mana   int
	Buff   string
}

// Empty reports whether nothing changed.
func (a Applied) Empty() bool {
	return a.Health == 0 && a.Mana == 0 && a.Buff == ""
}

// Restore raises health and mana by the effect amounts, clamped to the
// player's maxima. Negative amounts never lower a stat.
func Restore(p *types.Player, eff types.Effect) Applied {
	var a Applied
	if eff.Health > 0 {
		before := p.Health
		p.Health = clamp(p.Health+eff.Health, 0, p.MaxHealth)
		a.Health = p.Health - before
	}
	if eff.Mana > 0 {
		before := p.Mana
		p.Mana = clamp(p.Mana+eff.Mana, 0, p.MaxMana)
		a.Mana = p.Mana - before
	}
	a.Buff = eff.Buff
	return a
}

// Summary renders the system message for a used consumable.
func Summary(itemName string, a Applied) string {
	var parts []string
	if a.Health > 0 {
		parts = append(parts, fmt.Sprintf("+%d HP", a.Health))
	}
	if a.Mana > 0 {
		parts = append(parts, fmt.Sprintf("+%d MP", a.Mana))
	}
	if a.Buff != "" {
		parts = append(parts, a.Buff)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("You used %s. Nothing happened.", itemName)
	}
	return fmt.Sprintf("You used %s: %s.", itemName, strings.Join(parts, ", "))
}

// ApplyPatch shallow-merges patch into p and then clamps: maxima are floored
// at 0, level at 1, health and mana to [0, max]. Returns the names of the
// fields the patch set.
func ApplyPatch(p *types.Player, patch types.StatsPatch) []string {
	var changed []string
	if patch.Name != nil {
		p.Name = *patch.Name
		changed = append(changed, "name")
	}
	if patch.Level != nil {
		p.Level = *patch.Level
		changed = append(changed, "level")
	}
	if patch.MaxHealth != nil {
		p.MaxHealth = *patch.MaxHealth
		changed = append(changed, "max_health")
	}
	if patch.MaxMana != nil {
		p.MaxMana = *patch.MaxMana
		changed = append(changed, "max_mana")
	}
	if patch.Health != nil {
		p.Health = *patch.Health
		changed = append(changed, "health")
	}
	if patch.Mana != nil {
		p.Mana = *patch.Mana
		changed = append(changed, "mana")
	}
	if patch.Outfit != nil {
		p.Outfit = *patch.Outfit
		changed = append(changed, "outfit")
	}
	ClampStats(p)
	return changed
}

// ClampStats enforces 0 <= health <= maxHealth and 0 <= mana <= maxMana.
func ClampStats(p *types.Player) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.MaxHealth < 0 {
		p.MaxHealth = 0
	}
	if p.MaxMana < 0 {
		p.MaxMana = 0
	}
	p.Health = clamp(p.Health, 0, p.MaxHealth)
	p.Mana = clamp(p.Mana, 0, p.MaxMana)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
