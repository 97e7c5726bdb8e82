package main

import (
	"os"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/api"
	"github.com/SonicDMG/dnd-arena/internal/config"
	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
	"github.com/SonicDMG/dnd-arena/internal/narrative"
	"github.com/SonicDMG/dnd-arena/internal/service"
	"github.com/SonicDMG/dnd-arena/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration. Path may be provided via ARENA_CONFIG or
	// defaults to ./arena_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvArenaConfig)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": configPath, "hint": "create an arena_config.json with optional keys: server.address, roster_dir, action_timeout_seconds, summary_prompt"})
	}

	if cfg.SummaryPromptTemplate != "" {
		narrative.SetSummaryPromptTemplate(cfg.SummaryPromptTemplate)
	}

	roster, err := config.LoadRoster(cfg.RosterDir)
	if err != nil {
		logging.Fatal("Failed to load roster", err, logging.Fields{"roster_dir": cfg.RosterDir})
	}
	logging.Info("Roster loaded", logging.Fields{
		"heroes":   len(roster.Heroes),
		"monsters": len(roster.Monsters),
	})

	// Allow the DB path to be configured via ARENA_DB. Default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvArenaDB)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, 30*time.Minute)
	handler := api.NewBattleHandler(repo, roster, cfg.ActionTimeout)

	// Background scanner: periodically expire battles whose action
	// deadline has passed.
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			battles, err := repo.FindTimedOutBattles(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for _, b := range battles {
				bb, err := repo.GetBattleByID(b.ID)
				if err != nil {
					continue
				}
				if bb == nil || bb.Status != game.StatusInProgress {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, bb); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleID: bb.ID})
				}
			}
		}
	}()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteRoster, handler.ListRoster)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, handler.GetPlayerStats)

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.GET(constants.RouteBattleByCode, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteBattleResign, handler.ResignBattle)
		apiRoutes.GET(constants.RouteBattleWatch, handler.WatchBattle)
		apiRoutes.GET(constants.RouteBattleSummary, handler.GetSummary)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
