package api

import (
	"net/http"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const watchPollInterval = time.Second

// WatchBattle streams battle events over a websocket. Every event already
// persisted is replayed first, then new events are pushed as they land.
// The stream closes once the battle is finished and fully flushed.
func (h *BattleHandler) WatchBattle(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpgradeSocket})
		return
	}
	defer conn.Close()

	logging.Info("watch stream opened", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldCode:     b.JoinCode,
		constants.LogFieldAddr:     c.Request.RemoteAddr,
	})

	// Drain client frames so pings and close frames are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var lastID uint
	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		events, err := h.repo.EventsSince(b.ID, lastID)
		if err != nil {
			logging.Error("failed to fetch battle events", err, logging.Fields{
				constants.LogFieldBattleID: b.ID,
			})
			return
		}
		for i := range events {
			if err := conn.WriteJSON(&events[i]); err != nil {
				return
			}
			lastID = events[i].ID
		}

		current, err := h.repo.GetBattleByID(b.ID)
		if err != nil || current == nil {
			return
		}
		if current.Status == game.StatusFinished {
			// flush anything written between the event query and now
			tail, err := h.repo.EventsSince(b.ID, lastID)
			if err == nil {
				for i := range tail {
					if conn.WriteJSON(&tail[i]) != nil {
						return
					}
				}
			}
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle finished"))
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
