package engine

import (
	"math/rand"

	"github.com/SonicDMG/dnd-arena/internal/game"
)

// battleContext carries the battle being mutated and the source of
// randomness for one action resolution.
type battleContext struct {
	b   *game.Battle
	rng *rand.Rand
}

func newBattleContext(b *game.Battle, rng *rand.Rand) *battleContext {
	return &battleContext{b: b, rng: rng}
}

// add appends one narration line to the battle log.
func (bc *battleContext) add(kind, msg string) {
	bc.b.Events = append(bc.b.Events, game.BattleEvent{
		BattleID: bc.b.ID,
		Round:    bc.b.Round,
		Kind:     kind,
		Message:  msg,
	})
}
