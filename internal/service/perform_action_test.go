package service

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/engine"
	"github.com/SonicDMG/dnd-arena/internal/game"

	"gorm.io/gorm"
)

type mockBattleRepo struct {
	mu          sync.Mutex
	battles     map[uint]*game.Battle
	updated     *game.Battle
	statsCalled bool
	resigned    bool
	summary     string

	// persistedSummary mirrors sqlite's column: a full-row battle save
	// writes b.Summary over it, SaveSummary writes just the column.
	persistedSummary string
	battleSavedFirst bool
	summarySaved     chan struct{}
}

func (m *mockBattleRepo) GetBattleByID(id uint) (*game.Battle, error) {
	if b, ok := m.battles[id]; ok {
		return b, nil
	}
	return nil, ErrBattleNotFound
}

func (m *mockBattleRepo) UpdateBattle(b *game.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = b
	m.persistedSummary = b.Summary
	return nil
}

func (m *mockBattleRepo) UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsCalled = true
	m.resigned = resigned
	return nil
}

func (m *mockBattleRepo) SaveSummary(battleID uint, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = summary
	m.persistedSummary = summary
	m.battleSavedFirst = m.updated != nil
	if m.summarySaved != nil {
		close(m.summarySaved)
	}
	return nil
}

func testBattle(monsterHP int) *game.Battle {
	return &game.Battle{
		Model:    gorm.Model{ID: 7},
		JoinCode: "TESTCODE",
		Status:   game.StatusInProgress,
		Round:    1,
		Combatants: []game.Combatant{
			{
				Model: gorm.Model{ID: 1}, Name: "Fighter", Side: game.SideHeroes, Slot: 0,
				CurrentHitPoints: 30, MaxHitPoints: 30, ArmorClass: 16, AttackBonus: 20, DamageDice: "3",
			},
			{
				Model: gorm.Model{ID: 2}, Name: "Goblin", Side: game.SideMonster,
				CurrentHitPoints: monsterHP, MaxHitPoints: 60, ArmorClass: 1, AttackBonus: 4, DamageDice: "2",
			},
		},
	}
}

func TestPerformAction_MonsterPlaysBack(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := testBattle(60)
	mr := &mockBattleRepo{battles: map[uint]*game.Battle{7: b}}

	got, results, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 1, Type: game.ActionAttack}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected hero + monster results, got %d", len(results))
	}
	if results[0].ActorID != 1 || results[1].ActorID != 2 {
		t.Fatalf("unexpected actor order: %+v", results)
	}
	// monster HP: 60 - 3 (AC 1, attack bonus 20 cannot miss; flat dice)
	if got.Monster().CurrentHitPoints != 57 {
		t.Fatalf("monster HP = %d, want 57", got.Monster().CurrentHitPoints)
	}
	if cur := got.CurrentActor(); cur == nil || cur.Side != game.SideHeroes {
		t.Fatal("turn must return to the hero side")
	}
	if mr.updated == nil {
		t.Fatal("battle was not persisted")
	}
	if mr.statsCalled {
		t.Fatal("stats must not be counted while the battle continues")
	}
	if got.ActionDeadline.IsZero() {
		t.Fatal("action deadline must be reset for the next move")
	}
}

func TestPerformAction_KillingBlowEndsBattle(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := testBattle(3)
	mr := &mockBattleRepo{battles: map[uint]*game.Battle{7: b}}

	got, results, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 1, Type: game.ActionAttack}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("no monster action after its defeat; got %d results", len(results))
	}
	if !got.Finished() || got.Victor != game.SideHeroes {
		t.Fatalf("expected heroes victory, got %+v", got)
	}
	mr.mu.Lock()
	statsCalled := mr.statsCalled
	resigned := mr.resigned
	mr.mu.Unlock()
	if !statsCalled || resigned {
		t.Fatal("expected stats counted as a normal finish")
	}
	if !got.StatsCounted {
		t.Fatal("expected StatsCounted to block double counting")
	}
}

func TestPerformAction_SummaryOutlivesBattleSave(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	b := testBattle(3)
	b.JoinCode = "RACEFREE"
	mr := &mockBattleRepo{
		battles:      map[uint]*game.Battle{7: b},
		summarySaved: make(chan struct{}),
	}

	if _, _, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 1, Type: game.ActionAttack}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-mr.summarySaved:
	case <-time.After(5 * time.Second):
		t.Fatal("summary was never stored")
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()
	if !mr.battleSavedFirst {
		t.Fatal("battle row must be persisted before the summary job runs")
	}
	if mr.persistedSummary == "" {
		t.Fatal("stored summary was overwritten by the battle row save")
	}
}

func TestPerformAction_Guards(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := testBattle(60)
	mr := &mockBattleRepo{battles: map[uint]*game.Battle{7: b}}

	if _, _, err := PerformAction(mr, rng, 99, engine.ActionRequest{ActorID: 1, Type: game.ActionAttack}, time.Minute); err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
	if _, _, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 2, Type: game.ActionAttack}, time.Minute); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn for the monster, got %v", err)
	}
	if _, _, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 1, Type: game.ActionAbility, AbilityID: 42}, time.Minute); err != ErrUnknownAbility {
		t.Fatalf("expected ErrUnknownAbility, got %v", err)
	}

	b.Status = game.StatusFinished
	if _, _, err := PerformAction(mr, rng, 7, engine.ActionRequest{ActorID: 1, Type: game.ActionAttack}, time.Minute); err != ErrBattleNotInProgress {
		t.Fatalf("expected ErrBattleNotInProgress, got %v", err)
	}
}

func TestResign(t *testing.T) {
	b := testBattle(60)
	mr := &mockBattleRepo{battles: map[uint]*game.Battle{7: b}}
	b.PlayerName = "Sam"

	got, err := Resign(mr, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Finished() || got.Victor != game.SideMonster {
		t.Fatalf("expected monster victory on resignation, got %+v", got)
	}
	if !mr.statsCalled || !mr.resigned {
		t.Fatal("expected a resignation stat update")
	}
	if _, err := Resign(mr, 7); err != ErrBattleNotInProgress {
		t.Fatalf("expected ErrBattleNotInProgress on double resign, got %v", err)
	}
}

func TestHandleTimedOutBattle(t *testing.T) {
	b := testBattle(60)
	b.ActionDeadline = time.Now().Add(-time.Minute)
	mr := &mockBattleRepo{battles: map[uint]*game.Battle{7: b}}

	if err := HandleTimedOutBattle(mr, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Finished() || b.Victor != "" {
		t.Fatalf("expired battle must finish with no victor, got %+v", b)
	}
	if mr.statsCalled {
		t.Fatal("expired battles must not touch player stats")
	}
	if !b.StatsCounted {
		t.Fatal("expected StatsCounted to block later stat updates")
	}
}
