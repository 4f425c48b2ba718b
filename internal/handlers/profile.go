package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var user models.User
	if err := store.DB.First(&user, userID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, userView(user))
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Username != nil && *req.Username == "" {
		fieldErrors["username"] = "This field may not be blank."
	}
	if req.Email != nil {
		if *req.Email == "" {
			fieldErrors["email"] = "This field may not be blank."
		} else if !strings.Contains(*req.Email, "@") {
			fieldErrors["email"] = "Enter a valid email address."
		}
	}
	if len(fieldErrors) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	var user models.User
	if err := store.DB.First(&user, userID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := store.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httputil.WriteError(w, http.StatusBadRequest, "username or email already taken")
			return
		}
		logger.Log.Error("failed to update profile", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, userView(user))
}
