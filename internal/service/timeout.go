package service

import (
	"time"

	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
)

// HandleTimedOutBattle finishes a single idle battle. Expired battles end
// with no victor and are excluded from player stats (StatsCounted prevents
// any update).
func HandleTimedOutBattle(repo interface {
	UpdateBattle(b *game.Battle) error
}, b *game.Battle) error {
	if b == nil || b.Status != game.StatusInProgress {
		return nil
	}
	b.Status = game.StatusFinished
	b.Message = "Battle ended due to inactivity"
	b.Events = append(b.Events, game.BattleEvent{
		BattleID: b.ID,
		Round:    b.Round,
		Kind:     game.EventInfo,
		Message:  b.Message,
	})
	b.StatsCounted = true
	b.ActionDeadline = time.Time{}
	logging.Info("battle expired due to inactivity", logging.Fields{"battle_id": b.ID})
	return repo.UpdateBattle(b)
}
