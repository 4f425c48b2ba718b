package seed

import (
	"github.com/muhammedaliasad/fantasy-football/internal/account"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/market"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const seedPassword = "password123"

var demoAccounts = []struct {
	Username string
	Email    string
	TeamName string
}{
	{"demo1", "demo1@test.com", "Demo United"},
	{"demo2", "demo2@test.com", "Demo City"},
}

var demoAskingPrice = decimal.RequireFromString("1500000.00")

// Run seeds two demo accounts, each with one player on the transfer
// market, so a fresh instance has something to trade. Idempotent.
func Run() {
	db := store.DB

	var count int64
	emails := []string{demoAccounts[0].Email, demoAccounts[1].Email}
	if err := db.Model(&models.User{}).Where("email IN ?", emails).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count >= int64(len(demoAccounts)) {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	svc := market.NewService(db)
	for _, a := range demoAccounts {
		user, err := account.CreateUserWithTeam(db, a.Username, a.Email, seedPassword, a.TeamName)
		if err != nil {
			logger.Log.Fatal("seed registration failed", zap.Error(err))
		}

		var player models.Player
		err = db.Select("players.*").
			Joins("JOIN teams ON teams.id = players.team_id").
			Where("teams.user_id = ?", user.ID).
			Order("players.id").
			First(&player).Error
		if err != nil {
			logger.Log.Fatal("seed player lookup failed", zap.Error(err))
		}

		if _, err := svc.CreateListing(uint64(player.ID), demoAskingPrice, uint64(user.ID)); err != nil {
			logger.Log.Fatal("seed listing failed", zap.Error(err))
		}
	}

	logger.Log.Info("seeded demo accounts", zap.Int("count", len(demoAccounts)), zap.String("password", seedPassword))
}
