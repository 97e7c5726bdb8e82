package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/engine"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/narrative"
)

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrNotYourTurn         = errors.New("it is not that combatant's turn")
	ErrCombatantDefeated   = errors.New("combatant is already defeated")
	ErrUnknownAbility      = errors.New("combatant does not have that ability")
	ErrActionRejected      = errors.New("action could not be resolved")
)

// BattleRepo is the slice of the repository the action flow needs.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error
	SaveSummary(battleID uint, summary string) error
}

// PerformAction resolves one hero action, then auto-plays the monster (and
// skips knocked-out heroes) until a living hero holds the turn again or
// the battle ends. Returns the updated battle and every resolution result
// produced, in order, so the caller can replay them as presentation
// effects.
func PerformAction(repo BattleRepo, rng *rand.Rand, battleID uint, req engine.ActionRequest, actionTimeout time.Duration) (*game.Battle, []engine.ResolutionResult, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, nil, ErrBattleNotInProgress
	}
	actor := b.CurrentActor()
	if actor == nil {
		return nil, nil, ErrBattleNotInProgress
	}
	if actor.ID != req.ActorID || actor.Side != game.SideHeroes {
		return nil, nil, ErrNotYourTurn
	}
	if actor.IsDefeated {
		return nil, nil, ErrCombatantDefeated
	}
	if req.Type == game.ActionAbility && actor.AbilityByID(req.AbilityID) == nil {
		return nil, nil, ErrUnknownAbility
	}

	res := engine.ResolveAction(rng, b, req)
	if res == nil {
		return nil, nil, ErrActionRejected
	}
	results := []engine.ResolutionResult{*res}

	// The monster plays itself. Normally this is a single action before
	// the turn returns to a hero; the loop form also covers parties with
	// knocked-out members.
	for !b.Finished() {
		cur := b.CurrentActor()
		if cur == nil || cur.Side != game.SideMonster {
			break
		}
		mres := engine.ResolveAction(rng, b, monsterAction(rng, cur))
		if mres == nil {
			break
		}
		results = append(results, *mres)
	}

	if b.Finished() {
		if !b.StatsCounted {
			_ = repo.UpdateStatsOnBattleEnd(b, false)
			b.StatsCounted = true
		}
	} else {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, results, err
	}
	if b.Finished() {
		// fire-and-forget; the battle row must be persisted first or the
		// full-row save would overwrite the async SaveSummary column update
		go narrative.GenerateBattleSummary(repo, b)
	}
	return b, results, nil
}

// monsterAction picks the monster's move: uniform among its basic attack
// and sampled abilities, except healing abilities are only considered
// below half health. Target selection stays with the engine.
func monsterAction(rng *rand.Rand, m *game.Combatant) engine.ActionRequest {
	candidates := []engine.ActionRequest{{ActorID: m.ID, Type: game.ActionAttack}}
	for i := range m.Abilities {
		ab := &m.Abilities[i]
		if ab.Kind == game.AbilityHealing && m.CurrentHitPoints*2 >= m.MaxHitPoints {
			continue
		}
		candidates = append(candidates, engine.ActionRequest{
			ActorID:   m.ID,
			Type:      game.ActionAbility,
			AbilityID: ab.ID,
		})
	}
	return candidates[rng.Intn(len(candidates))]
}
