package storage

import (
	"github.com/SonicDMG/dnd-arena/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema updated via AutoMigrate. Battles, their combatants, abilities and
// events, plus player profiles all live here; roster templates are
// config-only and intentionally never persisted.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.Battle{},
		&game.Combatant{},
		&game.Ability{},
		&game.BattleEvent{},
		&game.PlayerProfile{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
