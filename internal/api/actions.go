package api

import (
	"net/http"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/engine"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
	"github.com/SonicDMG/dnd-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type ActionPayload struct {
	ActorID   uint   `json:"actor_id"`
	Action    string `json:"action_type"`
	AbilityID uint   `json:"ability_id"`
	TargetID  uint   `json:"target_id"`
}

// SubmitAction resolves one hero action. The response carries the updated
// battle plus the ordered resolution results, including any monster moves
// that played out before the turn returned to the party.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}

	var req ActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	actionType := game.ActionType(req.Action)
	if actionType != game.ActionAttack && actionType != game.ActionAbility {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	updated, results, err := service.PerformAction(h.repo, newRNG(), b.ID, engine.ActionRequest{
		ActorID:   req.ActorID,
		Type:      actionType,
		AbilityID: req.AbilityID,
		TargetID:  req.TargetID,
	}, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case service.ErrNotYourTurn:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
		case service.ErrCombatantDefeated:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCombatantDefeated})
		case service.ErrUnknownAbility:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAbility})
		case service.ErrActionRejected:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrFailedResolveAction})
		default:
			logging.Error("failed to resolve action", err, logging.Fields{
				constants.LogFieldBattleID: b.ID,
				constants.LogFieldActor:    req.ActorID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveAction})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle":  updated,
		"results": results,
	})
}
