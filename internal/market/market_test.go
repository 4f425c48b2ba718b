package market

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		strings.ReplaceAll(t.Name(), "/", "_"))
	return openDB(t, dsn)
}

func openDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Team{}, &models.Player{},
		&models.TransferListing{}, &models.Transaction{})
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func fixedRate(s string) RateFunc {
	r := decimal.RequireFromString(s)
	return func() decimal.Decimal { return r }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	seller     models.User
	buyer      models.User
	sellerTeam models.Team
	buyerTeam  models.Team
	player     models.Player
	listing    models.TransferListing
}

// newFixture sets up a seller with one listed player and a buyer.
func newFixture(t *testing.T, db *gorm.DB, buyerCapital, askingPrice decimal.Decimal) fixture {
	t.Helper()
	f := fixture{
		seller: models.User{Username: "seller", Email: "seller@test.com"},
		buyer:  models.User{Username: "buyer", Email: "buyer@test.com"},
	}
	mustCreate(t, db, &f.seller)
	mustCreate(t, db, &f.buyer)

	f.sellerTeam = models.Team{UserID: uint64(f.seller.ID), Name: "Sellers FC", Capital: dec("5000000.00")}
	f.buyerTeam = models.Team{UserID: uint64(f.buyer.ID), Name: "Buyers FC", Capital: buyerCapital}
	mustCreate(t, db, &f.sellerTeam)
	mustCreate(t, db, &f.buyerTeam)

	f.player = models.Player{
		TeamID:   uint64(f.sellerTeam.ID),
		Name:     "Player_AT_AAAAAA",
		Position: models.PositionAttacker,
		Value:    dec("1000000.00"),
	}
	mustCreate(t, db, &f.player)

	f.listing = models.TransferListing{
		PlayerID:    uint64(f.player.ID),
		AskingPrice: askingPrice,
		IsActive:    true,
	}
	mustCreate(t, db, &f.listing)
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func teamCapital(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var team models.Team
	if err := db.First(&team, id).Error; err != nil {
		t.Fatalf("load team %d: %v", id, err)
	}
	return team.Capital
}

func transactionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}
