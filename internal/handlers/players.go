package handlers

import (
	"errors"
	"net/http"

	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MyPlayersHandler lists the caller's players, ordered by position then name.
func MyPlayersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var team models.Team
	if err := store.DB.Where("user_id = ?", userID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "Team not found")
			return
		}
		logger.Log.Error("failed to load team", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch players")
		return
	}

	var players []models.Player
	err := store.DB.Preload("Team").
		Where("team_id = ?", team.ID).
		Order("position, name").
		Find(&players).Error
	if err != nil {
		logger.Log.Error("failed to fetch players", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch players")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, playerViews(players))
}
