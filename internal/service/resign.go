package service

import (
	"github.com/SonicDMG/dnd-arena/internal/game"
)

// Resign ends an in-progress battle in the monster's favor and counts it
// as a resignation in the player's stats.
func Resign(repo BattleRepo, battleID uint) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}

	b.Status = game.StatusFinished
	b.Victor = game.SideMonster
	b.Defeated = game.SideHeroes
	b.Message = b.PlayerName + " resigned the battle."
	b.Events = append(b.Events, game.BattleEvent{
		BattleID: b.ID,
		Round:    b.Round,
		Kind:     game.EventInfo,
		Message:  b.Message,
	})
	if !b.StatsCounted {
		_ = repo.UpdateStatsOnBattleEnd(b, true)
		b.StatsCounted = true
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
