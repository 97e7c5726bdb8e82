package engine

import (
	"math/rand"

	"github.com/SonicDMG/dnd-arena/internal/game"
)

// advanceTurn moves the turn to the next living actor in cycle order
// (hero slots ascending, then the monster). Defeated actors are skipped.
// Once an outcome has been recorded this is a no-op. If no living actor
// exists the turn index is left untouched; defeat detection has already
// ended the battle on that path, so this is an invariant guard only.
func advanceTurn(b *game.Battle) {
	if b.Finished() {
		return
	}
	order := b.TurnOrder()
	n := len(order)
	for step := 1; step <= n; step++ {
		idx := (b.TurnIndex + step) % n
		if order[idx].IsDefeated {
			continue
		}
		if idx <= b.TurnIndex {
			// wrapped past the monster: a new round begins
			b.Round++
		}
		b.TurnIndex = idx
		return
	}
}

// livingHeroes returns the hero-side members still standing, in slot order.
func livingHeroes(b *game.Battle) []*game.Combatant {
	heroes := b.Heroes()
	out := make([]*game.Combatant, 0, len(heroes))
	for _, h := range heroes {
		if h.CurrentHitPoints > 0 && !h.IsDefeated {
			out = append(out, h)
		}
	}
	return out
}

// chooseTarget picks the monster's victim. An explicit override is honored
// only while that hero is still alive; otherwise the pick is uniform among
// living heroes. Returns nil when no hero lives (battle already decided).
func chooseTarget(rng *rand.Rand, b *game.Battle, overrideID uint) *game.Combatant {
	living := livingHeroes(b)
	if len(living) == 0 {
		return nil
	}
	if overrideID != 0 {
		for _, h := range living {
			if h.ID == overrideID {
				return h
			}
		}
	}
	return living[rng.Intn(len(living))]
}

// allHeroesDefeated reports whether every party member is down. All HP
// values are read from the battle state after the current mutation has
// been applied, so the check always sees one consistent snapshot.
func allHeroesDefeated(b *game.Battle) bool {
	for _, h := range b.Heroes() {
		if h.CurrentHitPoints > 0 {
			return false
		}
	}
	return true
}
