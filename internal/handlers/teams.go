package handlers

import (
	"net/http"

	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MyTeamHandler returns the caller's team with its players and the
// computed total team value.
func MyTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var team models.Team
	err := store.DB.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("position, name")
	}).Where("user_id = ?", userID).First(&team).Error
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "Team not found")
		return
	}

	var user models.User
	if err := store.DB.First(&user, userID).Error; err != nil {
		logger.Log.Error("failed to load team owner", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch team")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, teamView(team, user))
}
