package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/muhammedaliasad/fantasy-football/internal/account"
	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"github.com/muhammedaliasad/fantasy-football/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	TeamName        string `json:"team_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RegisterHandler creates a user, a team with starting capital and a full
// starter squad, then issues the access/refresh pair.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Username == "" {
		fieldErrors["username"] = "This field is required."
	}
	if req.Email == "" {
		fieldErrors["email"] = "This field is required."
	} else if !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "Enter a valid email address."
	}
	if req.Password == "" {
		fieldErrors["password"] = "This field is required."
	}
	if req.TeamName == "" {
		fieldErrors["team_name"] = "This field is required."
	}
	if req.Password != req.PasswordConfirm {
		fieldErrors["password_confirm"] = "Passwords don't match."
	}
	if len(fieldErrors) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	user, err := account.CreateUserWithTeam(store.DB, req.Username, req.Email, req.Password, req.TeamName)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUsernameTaken):
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"username": "A user with that username already exists."})
		case errors.Is(err, account.ErrEmailTaken):
			httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"email": "A user with that email already exists."})
		default:
			logger.Log.Error("registration failed", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	tokens, err := token.NewPair(uint64(user.ID))
	if err != nil {
		logger.Log.Error("failed to issue tokens", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"tokens":  tokens,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	if err := store.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	tokens, err := token.NewPair(uint64(user.ID))
	if err != nil {
		logger.Log.Error("failed to issue tokens", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshHandler exchanges a valid refresh token for a fresh pair.
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Refresh == "" {
		httputil.WriteError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	claims, err := token.ParseRefresh(req.Refresh)
	if err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	tokens, err := token.NewPair(claims.UserID)
	if err != nil {
		logger.Log.Error("failed to issue tokens", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tokens)
}
