package market

import (
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Appreciation rate bounds applied to a player's value after a sale.
var (
	appreciationMin = decimal.RequireFromString("0.05")
	appreciationMax = decimal.RequireFromString("0.15")
)

// RateFunc yields the appreciation rate for one settlement. It is injected
// so tests can pin the draw.
type RateFunc func() decimal.Decimal

// UniformRate draws uniformly from [min, max). The shared math/rand
// source is locked internally, so the returned func is safe for
// concurrent settlements.
func UniformRate(min, max decimal.Decimal) RateFunc {
	span, _ := max.Sub(min).Float64()
	lo, _ := min.Float64()
	return func() decimal.Decimal {
		return decimal.NewFromFloat(lo + rand.Float64()*span)
	}
}

// Service owns the transfer marketplace: listings, settlement and the
// read projections over both.
type Service struct {
	db   *gorm.DB
	rate RateFunc
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, rate: UniformRate(appreciationMin, appreciationMax)}
}

// NewServiceWithRate is NewService with a fixed rate source, for tests.
func NewServiceWithRate(db *gorm.DB, rate RateFunc) *Service {
	return &Service{db: db, rate: rate}
}
