package market

import (
	"errors"

	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateListing puts a player owned by the requesting user up for sale.
// The already-listed check runs inside the same transaction that inserts
// the row.
func (s *Service) CreateListing(playerID uint64, askingPrice decimal.Decimal, userID uint64) (*models.TransferListing, error) {
	var listing models.TransferListing
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		err := tx.Select("players.*").
			Joins("JOIN teams ON teams.id = players.team_id").
			Where("players.id = ? AND teams.user_id = ?", playerID, userID).
			First(&player).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.TransferListing{}).
			Where("player_id = ? AND is_active = ?", player.ID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyListed
		}

		listing = models.TransferListing{
			PlayerID:    uint64(player.ID),
			AskingPrice: askingPrice,
			IsActive:    true,
		}
		if err := tx.Create(&listing).Error; err != nil {
			// Partial unique index on (player_id) WHERE is_active catches
			// the insert a concurrent request slipped past the count.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyListed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.Preload("Player").Preload("Player.Team").First(&listing, listing.ID).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// ActiveListings returns active listings newest-first, optionally
// restricted to the caller's own players.
func (s *Service) ActiveListings(userID uint64, mineOnly bool) ([]models.TransferListing, error) {
	q := s.db.Select("transfer_listings.*").
		Preload("Player").Preload("Player.Team").
		Where("transfer_listings.is_active = ?", true).
		Order("transfer_listings.created_at DESC, transfer_listings.id DESC")
	if mineOnly {
		q = q.Joins("JOIN players ON players.id = transfer_listings.player_id").
			Joins("JOIN teams ON teams.id = players.team_id").
			Where("teams.user_id = ?", userID)
	}
	var listings []models.TransferListing
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// CancelListing deactivates a listing. Only the owner of the listed
// player's team may cancel. Cancelling an already-inactive listing is a
// no-op and still succeeds.
func (s *Service) CancelListing(listingID uint64, userID uint64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.TransferListing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var owner models.Team
		err := tx.Select("teams.*").
			Joins("JOIN players ON players.team_id = teams.id").
			Where("players.id = ?", listing.PlayerID).
			First(&owner).Error
		if err != nil {
			return err
		}
		if owner.UserID != userID {
			return ErrForbidden
		}
		if !listing.IsActive {
			return nil
		}
		return tx.Model(&listing).Update("is_active", false).Error
	})
}
