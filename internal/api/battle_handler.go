package api

import (
	"math/rand"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/config"
	"github.com/SonicDMG/dnd-arena/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	roster        *config.Roster
	actionTimeout time.Duration
}

// NewBattleHandler creates a new BattleHandler with the given repository,
// roster and configured idle timeout.
func NewBattleHandler(repo storage.Repository, roster *config.Roster, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{repo: repo, roster: roster, actionTimeout: actionTimeout}
}

// newRNG returns a fresh randomness source for one request. Handlers run
// concurrently and rand.Rand is not safe for shared use.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
