package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubStatsRepo overrides only the profile lookup; the embedded interface
// panics on anything else, which these tests never touch.
type stubStatsRepo struct {
	storage.Repository
	profile *game.PlayerProfile
	err     error
}

func (s *stubStatsRepo) GetProfileByName(playerName string) (*game.PlayerProfile, error) {
	return s.profile, s.err
}

func statsContext(t *testing.T, name string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "playerName", Value: name}}
	return c, w
}

func TestGetPlayerStatsUnknownPlayerIs404(t *testing.T) {
	h := NewBattleHandler(&stubStatsRepo{err: gorm.ErrRecordNotFound}, nil, time.Minute)
	c, w := statsContext(t, "Nobody")

	h.GetPlayerStats(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d for an unknown player", w.Code, http.StatusNotFound)
	}
}

func TestGetPlayerStatsRepoFailureIs500(t *testing.T) {
	h := NewBattleHandler(&stubStatsRepo{err: gorm.ErrInvalidDB}, nil, time.Minute)
	c, w := statsContext(t, "Sam")

	h.GetPlayerStats(c)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d on a repository failure", w.Code, http.StatusInternalServerError)
	}
}

func TestGetPlayerStatsFound(t *testing.T) {
	h := NewBattleHandler(&stubStatsRepo{profile: &game.PlayerProfile{PlayerName: "Sam", Wins: 3}}, nil, time.Minute)
	c, w := statsContext(t, "Sam")

	h.GetPlayerStats(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
