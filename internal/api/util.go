package api

import (
	"math/rand"
	"net/http"
	"regexp"
	"strings"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/game"

	"github.com/gin-gonic/gin"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateJoinCode creates a short alphanumeric code for sharing battles.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// battleFromPath validates the :battleCode path parameter and loads the
// battle it names. On failure it writes the error response itself and
// returns ok=false.
func (h *BattleHandler) battleFromPath(c *gin.Context) (*game.Battle, bool) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return nil, false
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return nil, false
	}
	return b, true
}
