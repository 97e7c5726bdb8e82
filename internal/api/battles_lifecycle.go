package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/logging"
	"github.com/SonicDMG/dnd-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	PlayerName   string   `json:"player_name"`
	HeroName     string   `json:"hero_name"`
	SupportNames []string `json:"support_names"`
	MonsterName  string   `json:"monster_name"`
	Private      bool     `json:"private"`
}

// CreateBattle starts a new battle and returns its ID and join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameRequired})
		return
	}
	if utf8.RuneCountInString(req.PlayerName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
		return
	}

	b, err := service.StartBattle(h.repo, newRNG(), h.roster, service.StartBattleRequest{
		PlayerName:   req.PlayerName,
		HeroName:     req.HeroName,
		SupportNames: req.SupportNames,
		MonsterName:  req.MonsterName,
		Private:      req.Private,
		JoinCode:     generateJoinCode(),
	}, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrUnknownHero:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownHero})
		case service.ErrUnknownMonster:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownMonster})
		case service.ErrTooManySupports:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTooManySupportHeroes})
		default:
			logging.Error("failed to create battle", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
	})
}

// GetBattle returns the full battle state by join code.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBattles returns recent non-private battles.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	battles, err := h.repo.ListRecentBattles(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, battles)
}

// ListRoster returns the hero and monster templates available for new
// battles.
func (h *BattleHandler) ListRoster(c *gin.Context) {
	if h.roster == nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"heroes":   h.roster.Heroes,
		"monsters": h.roster.Monsters,
	})
}

// ResignBattle ends the battle in the monster's favor.
func (h *BattleHandler) ResignBattle(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	updated, err := service.Resign(h.repo, b.ID)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResignBattle})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetSummary returns the generated victory narrative once it is ready.
func (h *BattleHandler) GetSummary(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	if b.Summary == "" {
		c.JSON(http.StatusAccepted, gin.H{constants.JSONKeyMessage: constants.ErrSummaryNotReadyYet})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": b.Summary})
}
