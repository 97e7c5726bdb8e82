package api

import (
	"errors"
	"net/http"

	"github.com/SonicDMG/dnd-arena/internal/constants"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPlayerStats returns the lifetime record for a single player.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	name := c.Param("playerName")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameRequired})
		return
	}
	profile, err := h.repo.GetProfileByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListLeaderboard returns the top players ranked by wins.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	players, err := h.repo.GetTopPlayers(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, players)
}
