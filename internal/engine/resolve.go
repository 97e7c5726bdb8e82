package engine

import (
	"math/rand"
	"strconv"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/dice"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
)

// ActionRequest describes one action to resolve: a basic attack or an
// ability use by the combatant holding the turn. TargetID is an optional
// override for the monster's target pick; hero attacks always resolve
// against the monster.
type ActionRequest struct {
	ActorID   uint
	Type      game.ActionType
	AbilityID uint
	TargetID  uint
}

// SwingResult records one attack roll. Automatic swings carry no d20 roll.
type SwingResult struct {
	Roll       int  `json:"roll"`
	Bonus      int  `json:"bonus"`
	Total      int  `json:"total"`
	ArmorClass int  `json:"armor_class"`
	Hit        bool `json:"hit"`
	Automatic  bool `json:"automatic"`
	Damage     int  `json:"damage"`
}

// ResolutionResult is the full outcome of one resolved action. The caller
// dispatches presentation effects (floating numbers, shakes, narration)
// from this value; the engine itself takes no callbacks.
type ResolutionResult struct {
	ActorID     uint            `json:"actor_id"`
	ActorName   string          `json:"actor_name"`
	TargetID    uint            `json:"target_id"`
	TargetName  string          `json:"target_name"`
	Action      game.ActionType `json:"action"`
	AbilityName string          `json:"ability_name,omitempty"`

	Swings  []SwingResult `json:"swings,omitempty"`
	Damage  int           `json:"damage"`
	Healing int           `json:"healing"`

	TargetHitPoints    int  `json:"target_hit_points"`
	TargetMaxHitPoints int  `json:"target_max_hit_points"`
	KnockedOut         bool `json:"knocked_out"`

	BattleEnded bool      `json:"battle_ended"`
	Victor      game.Side `json:"victor,omitempty"`
	Defeated    game.Side `json:"defeated,omitempty"`
}

// ResolveAction resolves one action against the battle state and returns
// the result, or nil when a guard condition applies. Guard conditions
// (battle not in progress, actor missing or defeated, actor out of turn,
// no living target) abort silently: the battle state is left untouched.
func ResolveAction(rng *rand.Rand, b *game.Battle, req ActionRequest) *ResolutionResult {
	if b == nil || b.Finished() || b.Status != game.StatusInProgress {
		return nil
	}
	actor := b.CurrentActor()
	if actor == nil || actor.IsDefeated || actor.ID != req.ActorID {
		return nil
	}

	bc := newBattleContext(b, rng)

	var ability *game.Ability
	if req.Type == game.ActionAbility {
		ability = actor.AbilityByID(req.AbilityID)
		if ability == nil {
			return nil
		}
	}

	var res *ResolutionResult
	if ability != nil && ability.Kind == game.AbilityHealing {
		res = bc.execHealing(actor, ability)
	} else {
		defender := bc.pickDefender(actor, req.TargetID)
		if defender == nil {
			return nil
		}
		res = bc.execAttack(actor, defender, ability)
	}

	bc.checkOutcome(res)
	advanceTurn(b)
	return res
}

// pickDefender resolves the defender for an attack action. Heroes always
// strike the monster; the monster picks among living heroes.
func (bc *battleContext) pickDefender(actor *game.Combatant, overrideID uint) *game.Combatant {
	if actor.Side == game.SideMonster {
		return chooseTarget(bc.rng, bc.b, overrideID)
	}
	m := bc.b.Monster()
	if m == nil || m.IsDefeated {
		return nil
	}
	return m
}

// execAttack resolves a basic attack or an attack ability: one independent
// d20 roll per swing, only hitting swings contribute damage, and automatic
// abilities skip the to-hit roll entirely. The summed damage is applied
// once, floored at zero HP.
func (bc *battleContext) execAttack(actor, defender *game.Combatant, ability *game.Ability) *ResolutionResult {
	swings := 1
	dmgDice := actor.DamageDice
	automatic := false
	abilityName := ""
	if ability != nil {
		abilityName = ability.Name
		automatic = ability.Automatic
		if ability.Swings > 1 {
			swings = ability.Swings
		}
		if ability.Dice != "" {
			dmgDice = ability.Dice
		}
	}

	res := &ResolutionResult{
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		TargetID:    defender.ID,
		TargetName:  defender.Name,
		Action:      game.ActionAttack,
		AbilityName: abilityName,
	}
	if ability != nil {
		res.Action = game.ActionAbility
	}

	verb := actor.Name + " attacks " + defender.Name
	if abilityName != "" {
		verb = actor.Name + " uses " + abilityName + " on " + defender.Name
	}

	total := 0
	for i := 0; i < swings; i++ {
		var sw SwingResult
		if automatic {
			sw = SwingResult{Automatic: true, Hit: true, Damage: dice.Roll(bc.rng, dmgDice)}
			bc.add(game.EventAttack, verb+": "+strconv.Itoa(sw.Damage)+" damage (no attack roll)")
		} else {
			roll := dice.D20(bc.rng)
			sw = SwingResult{
				Roll:       roll,
				Bonus:      actor.AttackBonus,
				Total:      roll + actor.AttackBonus,
				ArmorClass: defender.ArmorClass,
			}
			// equality counts as a hit
			sw.Hit = sw.Total >= defender.ArmorClass
			if sw.Hit {
				sw.Damage = dice.Roll(bc.rng, dmgDice)
				bc.add(game.EventAttack, verb+": d20 "+strconv.Itoa(roll)+" + "+strconv.Itoa(actor.AttackBonus)+" = "+strconv.Itoa(sw.Total)+" vs AC "+strconv.Itoa(defender.ArmorClass)+": hit for "+strconv.Itoa(sw.Damage)+" damage")
			} else {
				bc.add(game.EventMiss, verb+": d20 "+strconv.Itoa(roll)+" + "+strconv.Itoa(actor.AttackBonus)+" = "+strconv.Itoa(sw.Total)+" vs AC "+strconv.Itoa(defender.ArmorClass)+": miss")
			}
		}
		logging.Info("attack roll", logging.Fields{
			constants.LogFieldBattleID: bc.b.ID,
			constants.LogFieldActor:    actor.Name,
			constants.LogFieldTarget:   defender.Name,
			"roll":                     sw.Roll,
			"bonus":                    sw.Bonus,
			"total":                    sw.Total,
			"armor_class":              defender.ArmorClass,
			"hit":                      sw.Hit,
			"damage":                   sw.Damage,
		})
		res.Swings = append(res.Swings, sw)
		total += sw.Damage
	}

	res.Damage = total
	newHP := defender.CurrentHitPoints - total
	if newHP < 0 {
		newHP = 0
	}
	defender.CurrentHitPoints = newHP
	res.TargetHitPoints = newHP
	res.TargetMaxHitPoints = defender.MaxHitPoints

	if total > 0 {
		bc.add(game.EventDamage, defender.Name+" takes "+strconv.Itoa(total)+" damage ("+strconv.Itoa(newHP)+"/"+strconv.Itoa(defender.MaxHitPoints)+" HP)")
	}
	if newHP == 0 && !defender.IsDefeated {
		defender.IsDefeated = true
		res.KnockedOut = true
		if defender.Side == game.SideHeroes {
			bc.add(game.EventKnockedOut, defender.Name+" is knocked out!")
		} else {
			bc.add(game.EventKnockedOut, defender.Name+" is defeated!")
		}
	}
	return res
}

// execHealing rolls the ability dice and heals the caster, capped at max
// hit points. Healing never resolves against a defender.
func (bc *battleContext) execHealing(actor *game.Combatant, ability *game.Ability) *ResolutionResult {
	healed := dice.Roll(bc.rng, ability.Dice)
	newHP := actor.CurrentHitPoints + healed
	if newHP > actor.MaxHitPoints {
		newHP = actor.MaxHitPoints
	}
	applied := newHP - actor.CurrentHitPoints
	actor.CurrentHitPoints = newHP

	bc.add(game.EventHeal, actor.Name+" casts "+ability.Name+" and recovers "+strconv.Itoa(applied)+" HP ("+strconv.Itoa(newHP)+"/"+strconv.Itoa(actor.MaxHitPoints)+" HP)")

	return &ResolutionResult{
		ActorID:            actor.ID,
		ActorName:          actor.Name,
		TargetID:           actor.ID,
		TargetName:         actor.Name,
		Action:             game.ActionAbility,
		AbilityName:        ability.Name,
		Healing:            applied,
		TargetHitPoints:    newHP,
		TargetMaxHitPoints: actor.MaxHitPoints,
	}
}

// checkOutcome evaluates victory conditions from the mutated battle state
// and records the terminal outcome when one side has fallen.
func (bc *battleContext) checkOutcome(res *ResolutionResult) {
	b := bc.b
	if b.Finished() {
		return
	}
	m := b.Monster()
	switch {
	case m != nil && m.CurrentHitPoints <= 0:
		b.Victor = game.SideHeroes
		b.Defeated = game.SideMonster
		b.Message = "The party is victorious!"
	case allHeroesDefeated(b):
		b.Victor = game.SideMonster
		b.Defeated = game.SideHeroes
		b.Message = "The party has fallen."
	default:
		return
	}
	b.Status = game.StatusFinished
	bc.add(game.EventVictory, b.Message)
	if res != nil {
		res.BattleEnded = true
		res.Victor = b.Victor
		res.Defeated = b.Defeated
	}
}
