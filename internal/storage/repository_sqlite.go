package storage

import (
	"time"

	"github.com/SonicDMG/dnd-arena/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
	// publicTTL bounds how long finished/idle battles stay in the
	// public listing.
	publicTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, publicTTL time.Duration) Repository {
	if publicTTL <= 0 {
		publicTTL = 30 * time.Minute
	}
	return &sqliteRepository{db: db, publicTTL: publicTTL}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Combatants.Abilities").Preload("Events").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Combatants.Abilities").Preload("Events").Where("join_code = ?", code).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.Battle, error) {
	if limit <= 0 {
		limit = 20
	}
	var battles []game.Battle
	cutoff := time.Now().Add(-r.publicTTL)
	err := r.db.Preload("Combatants").
		Where("private = ? AND created_at > ?", false, cutoff).
		Order("created_at desc").
		Limit(limit).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) EventsSince(battleID uint, afterID uint) ([]game.BattleEvent, error) {
	var events []game.BattleEvent
	err := r.db.Where("battle_id = ? AND id > ?", battleID, afterID).
		Order("id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *sqliteRepository) SaveSummary(battleID uint, summary string) error {
	return r.db.Model(&game.Battle{}).Where("id = ?", battleID).Update("summary", summary).Error
}

func (r *sqliteRepository) UpsertProfile(playerName string) error {
	if playerName == "" {
		return nil
	}
	p := game.PlayerProfile{PlayerName: playerName}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_name"}},
		DoNothing: true,
	}).Create(&p).Error
}

// UpdateStatsOnBattleEnd bumps the creator's aggregate counters once per
// finished battle. Callers guard re-entry with Battle.StatsCounted.
func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, resigned bool) error {
	if b.PlayerName == "" {
		return nil
	}
	if err := r.UpsertProfile(b.PlayerName); err != nil {
		return err
	}
	var p game.PlayerProfile
	if err := r.db.Where("player_name = ?", b.PlayerName).First(&p).Error; err != nil {
		return err
	}
	p.BattlesPlayed++
	switch {
	case resigned:
		p.Resignations++
	case b.Victor == game.SideHeroes:
		p.Wins++
	case b.Victor == game.SideMonster:
		p.Defeats++
	}
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfileByName(playerName string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("player_name = ?", playerName).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []game.PlayerProfile
	err := r.db.Order("wins desc, battles_played asc").Limit(limit).Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Where("status = ? AND action_deadline <= ? AND action_deadline > ?",
		game.StatusInProgress, now, time.Time{}).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
