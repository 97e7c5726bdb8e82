package game

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Side identifies which side of the arena a combatant fights on.
type Side string

const (
	SideHeroes  Side = "heroes"
	SideMonster Side = "monster"
)

// Battle status values.
const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// AbilityKind distinguishes the two ability variants.
type AbilityKind string

const (
	AbilityAttack  AbilityKind = "attack"
	AbilityHealing AbilityKind = "healing"
)

// ActionType is a string alias representing a combatant's chosen action.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type ActionType string

const (
	ActionNone    ActionType = ""
	ActionAttack  ActionType = "attack"
	ActionAbility ActionType = "ability"
)

// Event kinds recorded in the battle log.
const (
	EventInfo       = "info"
	EventAttack     = "attack"
	EventMiss       = "miss"
	EventDamage     = "damage"
	EventHeal       = "heal"
	EventKnockedOut = "knocked_out"
	EventVictory    = "victory"
)

// Ability is one fixed move sampled onto a combatant when the battle
// starts. Attack abilities may swing more than once (Swings > 1) or skip
// the to-hit roll entirely (Automatic). Healing abilities always apply to
// the caster. Immutable once sampled.
type Ability struct {
	gorm.Model
	CombatantID uint        `json:"-"`
	Name        string      `json:"name"`
	Kind        AbilityKind `json:"kind"`
	// Dice is the ability's dice expression. Empty means "use the
	// combatant's default damage dice".
	Dice        string `json:"dice"`
	Swings      int    `json:"swings"`
	Automatic   bool   `json:"automatic"`
	Description string `json:"description" gorm:"size:256"`
}

// Combatant is any entity participating in a battle: the primary hero,
// a support hero, or the monster. Created fresh at full HP when the
// battle starts; never deleted, only flagged defeated.
type Combatant struct {
	gorm.Model
	BattleID uint   `json:"-"`
	Name     string `json:"name"`
	Side     Side   `json:"side"`
	// Slot orders the hero side: 0 is the primary hero, 1 and 2 the
	// optional support heroes. The monster always uses slot 0 on its side.
	Slot             int       `json:"slot"`
	CurrentHitPoints int       `json:"current_hit_points"`
	MaxHitPoints     int       `json:"max_hit_points"`
	ArmorClass       int       `json:"armor_class"`
	AttackBonus      int       `json:"attack_bonus"`
	DamageDice       string    `json:"damage_dice"`
	Abilities        []Ability `json:"abilities"`
	IsDefeated       bool      `json:"is_defeated"`
}

// AbilityByID returns the combatant's ability with the given ID, or nil.
func (c *Combatant) AbilityByID(id uint) *Ability {
	for i := range c.Abilities {
		if c.Abilities[i].ID == id {
			return &c.Abilities[i]
		}
	}
	return nil
}

// BattleEvent is one line of battle narration. Kind is one of the Event*
// constants so clients can style roll results, damage and knockouts
// differently.
type BattleEvent struct {
	gorm.Model
	BattleID uint   `json:"-"`
	Round    int    `json:"round"`
	Kind     string `json:"kind"`
	Message  string `json:"message" gorm:"size:512"`
}

// Battle holds the full state of one arena match: a hero party of one to
// three combatants against a single monster.
type Battle struct {
	gorm.Model
	JoinCode   string `json:"join_code" gorm:"unique"`
	PlayerName string `json:"player_name"`
	Private    bool   `json:"private"`

	Combatants []Combatant   `json:"combatants"`
	Events     []BattleEvent `json:"events"`

	Status string `json:"status"`
	Round  int    `json:"round"`
	// TurnIndex indexes into TurnOrder(): hero slots in order, monster last.
	TurnIndex int `json:"turn_index"`

	Victor   Side   `json:"victor"`
	Defeated Side   `json:"defeated"`
	Message  string `json:"message"`
	// Summary is the generated battle narrative, filled in asynchronously
	// after the battle ends. Empty until generation completes.
	Summary string `json:"summary" gorm:"size:2048"`

	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// Heroes returns the hero-side combatants ordered by slot.
func (b *Battle) Heroes() []*Combatant {
	out := make([]*Combatant, 0, 3)
	for i := range b.Combatants {
		if b.Combatants[i].Side == SideHeroes {
			out = append(out, &b.Combatants[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// Monster returns the monster-side combatant, or nil if absent.
func (b *Battle) Monster() *Combatant {
	for i := range b.Combatants {
		if b.Combatants[i].Side == SideMonster {
			return &b.Combatants[i]
		}
	}
	return nil
}

// TurnOrder returns actors in cycle order: hero slots ascending, then the
// monster.
func (b *Battle) TurnOrder() []*Combatant {
	order := b.Heroes()
	if m := b.Monster(); m != nil {
		order = append(order, m)
	}
	return order
}

// CurrentActor returns the combatant holding the turn, or nil for an
// out-of-range index.
func (b *Battle) CurrentActor() *Combatant {
	order := b.TurnOrder()
	if b.TurnIndex < 0 || b.TurnIndex >= len(order) {
		return nil
	}
	return order[b.TurnIndex]
}

// OneOnOne reports whether the hero side has no support heroes.
func (b *Battle) OneOnOne() bool {
	return len(b.Heroes()) == 1
}

// Finished reports whether an outcome has been recorded.
func (b *Battle) Finished() bool {
	return b.Status == StatusFinished
}

// PlayerProfile stores per-player aggregate stats, keyed by display name.
type PlayerProfile struct {
	gorm.Model
	PlayerName    string `json:"player_name" gorm:"uniqueIndex"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Defeats       int    `json:"defeats"`
	Resignations  int    `json:"resignations"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }
