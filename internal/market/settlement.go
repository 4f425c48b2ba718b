package market

import (
	"errors"

	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Buy settles a transfer listing for the requesting user: capital moves
// from buyer to seller, the player changes teams and appreciates in value,
// an audit Transaction is recorded and the listing is consumed. The whole
// mutation set commits or rolls back as one.
//
// Concurrent buys (or a racing cancel) on the same listing are serialized
// by the guarded claim on the listing row: the update only matches while
// is_active is still true on the committed row, so exactly one request
// wins and the rest observe ErrNotFound. The capital check is likewise a
// guarded debit, never a check against the snapshot read earlier in the
// transaction.
func (s *Service) Buy(listingID uint64, buyerUserID uint64) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.TransferListing
		err := tx.Where("id = ? AND is_active = ?", listingID, true).First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var player models.Player
		if err := tx.First(&player, listing.PlayerID).Error; err != nil {
			return err
		}
		var sellerTeam models.Team
		if err := tx.First(&sellerTeam, player.TeamID).Error; err != nil {
			return err
		}
		if sellerTeam.UserID == buyerUserID {
			return ErrOwnPlayer
		}

		var buyerTeam models.Team
		err = tx.Where("user_id = ?", buyerUserID).First(&buyerTeam).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Claim the listing. Zero rows affected means a concurrent buy or
		// cancel committed first; the purchase aborts untouched.
		res := tx.Model(&models.TransferListing{}).
			Where("id = ? AND is_active = ?", listing.ID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		price := listing.AskingPrice
		if err := s.moveCapital(tx, buyerTeam.ID, sellerTeam.ID, price); err != nil {
			return err
		}

		rate := s.rate()
		value := player.Value.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
		err = tx.Model(&player).Updates(map[string]any{
			"team_id": buyerTeam.ID,
			"value":   value,
		}).Error
		if err != nil {
			return err
		}

		txn = models.Transaction{
			BuyerID:        buyerUserID,
			SellerID:       sellerTeam.UserID,
			PlayerID:       uint64(player.ID),
			TransferAmount: price,
			IsActive:       true,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("Buyer").Preload("Seller").
		Preload("Player").Preload("Player.Team").
		First(&txn, txn.ID).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// moveCapital debits the buyer and credits the seller by the same exact
// decimal amount. The two updates touch team rows in ascending id order so
// opposing transfers between the same pair of teams cannot deadlock.
func (s *Service) moveCapital(tx *gorm.DB, buyerTeamID, sellerTeamID uint, price decimal.Decimal) error {
	debit := func() error {
		res := tx.Model(&models.Team{}).
			Where("id = ? AND capital >= ?", buyerTeamID, price).
			Update("capital", gorm.Expr("capital - ?", price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		return nil
	}
	credit := func() error {
		return tx.Model(&models.Team{}).
			Where("id = ?", sellerTeamID).
			Update("capital", gorm.Expr("capital + ?", price)).Error
	}

	if buyerTeamID < sellerTeamID {
		if err := debit(); err != nil {
			return err
		}
		return credit()
	}
	if err := credit(); err != nil {
		return err
	}
	return debit()
}
