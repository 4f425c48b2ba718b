package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Player positions.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DF"
	PositionMidfielder = "MF"
	PositionAttacker   = "AT"
)

var PositionNames = map[string]string{
	PositionGoalkeeper: "Goalkeeper",
	PositionDefender:   "Defender",
	PositionMidfielder: "Midfielder",
	PositionAttacker:   "Attacker",
}

type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
}

// Team belongs to exactly one user, created at registration.
type Team struct {
	gorm.Model
	UserID  uint64          `gorm:"uniqueIndex;not null"`
	Name    string          `gorm:"size:100;not null"`
	Capital decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Players []Player        `gorm:"foreignKey:TeamID"`
}

// TotalValue is the computed sum of the players' values; it is never stored.
func (t Team) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Players {
		total = total.Add(p.Value)
	}
	return total
}

// Player ownership (TeamID) is reassigned on a completed transfer; the row
// itself is never re-created.
type Player struct {
	gorm.Model
	TeamID   uint64          `gorm:"index;not null"`
	Name     string          `gorm:"size:100;not null"`
	Position string          `gorm:"size:2;not null"` // GK | DF | MF | AT
	Value    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Team     Team            `gorm:"foreignKey:TeamID"`
}

// TransferListing is an offer to sell a player at a fixed asking price.
// At most one active listing exists per player, backed by a partial
// unique index; inactive rows are kept for history and never deleted.
type TransferListing struct {
	gorm.Model
	PlayerID    uint64          `gorm:"index;uniqueIndex:uniq_active_listing_player,where:is_active;not null"`
	AskingPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsActive    bool            `gorm:"index;not null"`
	Player      Player          `gorm:"foreignKey:PlayerID"`
}

// Transaction is the immutable audit record of a completed transfer.
// Only is_active may be flipped afterwards, by administrative tooling.
type Transaction struct {
	gorm.Model
	BuyerID        uint64          `gorm:"index;not null"`
	SellerID       uint64          `gorm:"index;not null"`
	PlayerID       uint64          `gorm:"index;not null"`
	TransferAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsActive       bool            `gorm:"index;not null"`
	Buyer          User            `gorm:"foreignKey:BuyerID"`
	Seller         User            `gorm:"foreignKey:SellerID"`
	Player         Player          `gorm:"foreignKey:PlayerID"`
}
