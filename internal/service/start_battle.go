package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/config"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
)

var (
	ErrUnknownHero        = errors.New("unknown hero template")
	ErrUnknownMonster     = errors.New("unknown monster template")
	ErrTooManySupports    = errors.New("a party allows at most two support heroes")
	ErrEmptyBestiary      = errors.New("no monsters available")
	ErrPlayerNameRequired = errors.New("player name is required")
)

// maxSampledAbilities bounds the random ability subset each fresh
// combatant receives at battle start.
const maxSampledAbilities = 3

// CreateRepo is the slice of the repository StartBattle needs.
type CreateRepo interface {
	CreateBattle(b *game.Battle) error
	UpsertProfile(playerName string) error
}

// StartBattleRequest describes a new battle: the player's display name,
// the primary hero, up to two support heroes and an optional monster pick
// (random when empty).
type StartBattleRequest struct {
	PlayerName   string
	HeroName     string
	SupportNames []string
	MonsterName  string
	Private      bool
	JoinCode     string
}

// StartBattle builds a fresh battle from roster templates and persists it.
// Every combatant starts at full hit points with a randomly sampled subset
// of its template's abilities; the primary hero holds the first turn.
func StartBattle(repo CreateRepo, rng *rand.Rand, roster *config.Roster, req StartBattleRequest, actionTimeout time.Duration) (*game.Battle, error) {
	if req.PlayerName == "" {
		return nil, ErrPlayerNameRequired
	}
	if len(req.SupportNames) > 2 {
		return nil, ErrTooManySupports
	}

	heroTpl := roster.HeroByName(req.HeroName)
	if heroTpl == nil {
		return nil, ErrUnknownHero
	}

	combatants := make([]game.Combatant, 0, 4)
	combatants = append(combatants, newCombatant(rng, heroTpl, game.SideHeroes, 0))
	for i, name := range req.SupportNames {
		tpl := roster.HeroByName(name)
		if tpl == nil {
			return nil, ErrUnknownHero
		}
		combatants = append(combatants, newCombatant(rng, tpl, game.SideHeroes, i+1))
	}

	var monsterTpl *game.CombatantTemplate
	if req.MonsterName != "" {
		monsterTpl = roster.MonsterByName(req.MonsterName)
		if monsterTpl == nil {
			return nil, ErrUnknownMonster
		}
	} else {
		if len(roster.Monsters) == 0 {
			return nil, ErrEmptyBestiary
		}
		monsterTpl = &roster.Monsters[rng.Intn(len(roster.Monsters))]
	}
	combatants = append(combatants, newCombatant(rng, monsterTpl, game.SideMonster, 0))

	b := &game.Battle{
		JoinCode:       req.JoinCode,
		PlayerName:     req.PlayerName,
		Private:        req.Private,
		Combatants:     combatants,
		Status:         game.StatusInProgress,
		Round:          1,
		TurnIndex:      0,
		Message:        "The battle has started!",
		ActionDeadline: time.Now().Add(actionTimeout),
	}
	b.Events = append(b.Events, game.BattleEvent{
		Round:   1,
		Kind:    game.EventInfo,
		Message: heroTpl.Name + " enters the arena against " + monsterTpl.Name + "!",
	})

	if err := repo.UpsertProfile(req.PlayerName); err != nil {
		logging.Error("failed to upsert player profile", err, logging.Fields{"player_name": req.PlayerName})
	}
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// newCombatant materializes a template into a fresh combatant at full HP
// with a randomly sampled ability subset.
func newCombatant(rng *rand.Rand, tpl *game.CombatantTemplate, side game.Side, slot int) game.Combatant {
	c := game.Combatant{
		Name:             tpl.Name,
		Side:             side,
		Slot:             slot,
		CurrentHitPoints: tpl.HitPoints,
		MaxHitPoints:     tpl.HitPoints,
		ArmorClass:       tpl.ArmorClass,
		AttackBonus:      tpl.AttackBonus,
		DamageDice:       tpl.DamageDice,
	}

	n := len(tpl.Abilities)
	if n == 0 {
		return c
	}
	idx := rng.Perm(n)
	take := n
	if take > maxSampledAbilities {
		take = maxSampledAbilities
	}
	for _, i := range idx[:take] {
		at := tpl.Abilities[i]
		c.Abilities = append(c.Abilities, game.Ability{
			Name:        at.Name,
			Kind:        at.Kind,
			Dice:        at.Dice,
			Swings:      at.Swings,
			Automatic:   at.Automatic,
			Description: at.Description,
		})
	}
	return c
}
