package market

import "github.com/muhammedaliasad/fantasy-football/internal/models"

// Transactions returns active transactions newest-first, optionally
// restricted to those where the caller is buyer or seller.
func (s *Service) Transactions(userID uint64, mineOnly bool) ([]models.Transaction, error) {
	q := s.db.Preload("Buyer").Preload("Seller").
		Preload("Player").Preload("Player.Team").
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC")
	if mineOnly {
		q = q.Where("buyer_id = ? OR seller_id = ?", userID, userID)
	}
	var txns []models.Transaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
