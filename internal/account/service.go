package account

import (
	"errors"

	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)

var (
	// StartingCapital is the capital every new team begins with.
	StartingCapital = decimal.RequireFromString("5000000.00")
	// StartingPlayerValue is the market value of every starter player.
	StartingPlayerValue = decimal.RequireFromString("1000000.00")
)

// squad is the fixed composition of a starter squad: 20 players.
var squad = []struct {
	Position string
	Count    int
}{
	{models.PositionGoalkeeper, 2},
	{models.PositionDefender, 5},
	{models.PositionMidfielder, 5},
	{models.PositionAttacker, 8},
}

// CreateUserWithTeam registers a user together with a team holding the
// starting capital and a full starter squad. The whole sequence runs in one
// transaction; a partially created account is never persisted.
func CreateUserWithTeam(db *gorm.DB, username, email, password, teamName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		user = models.User{Username: username, Email: email, Password: string(hash)}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		team := models.Team{UserID: uint64(user.ID), Name: teamName, Capital: StartingCapital}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		for _, s := range squad {
			for i := 0; i < s.Count; i++ {
				player := models.Player{
					TeamID:   uint64(team.ID),
					Name:     GeneratePlayerName(s.Position),
					Position: s.Position,
					Value:    StartingPlayerValue,
				}
				if err := tx.Create(&player).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
