package storage

import (
	"time"

	"github.com/SonicDMG/dnd-arena/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// ListRecentBattles returns non-private battles created within the
	// public listing window, newest first.
	ListRecentBattles(limit int) ([]game.Battle, error)
	// EventsSince returns battle events with an ID greater than afterID,
	// oldest first. Used by the websocket watch endpoint.
	EventsSince(battleID uint, afterID uint) ([]game.BattleEvent, error)
	// SaveSummary stores the generated victory narrative for a battle
	// without rewriting the rest of the battle row.
	SaveSummary(battleID uint, summary string) error

	UpsertProfile(playerName string) error
	UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error
	GetProfileByName(playerName string) (*game.PlayerProfile, error)
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)

	// FindTimedOutBattles returns battles still in progress whose action
	// deadline is at or before the provided time. The caller decides how
	// to resolve them.
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
