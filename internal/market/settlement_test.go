package market

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
)

func TestBuySettlesTransfer(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3000000.00"), dec("2000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.10"))

	txn, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID))
	if err != nil {
		t.Fatalf("buy: %v", err)
	}

	if got := teamCapital(t, db, f.buyerTeam.ID); !got.Equal(dec("1000000.00")) {
		t.Errorf("buyer capital = %s, want 1000000.00", got)
	}
	if got := teamCapital(t, db, f.sellerTeam.ID); !got.Equal(dec("7000000.00")) {
		t.Errorf("seller capital = %s, want 7000000.00", got)
	}

	var player models.Player
	if err := db.First(&player, f.player.ID).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	if player.TeamID != uint64(f.buyerTeam.ID) {
		t.Errorf("player team = %d, want %d", player.TeamID, f.buyerTeam.ID)
	}
	if !player.Value.Equal(dec("1100000.00")) {
		t.Errorf("player value = %s, want 1100000.00", player.Value)
	}

	var listing models.TransferListing
	if err := db.First(&listing, f.listing.ID).Error; err != nil {
		t.Fatalf("load listing: %v", err)
	}
	if listing.IsActive {
		t.Error("listing still active after sale")
	}

	if txn.BuyerID != uint64(f.buyer.ID) || txn.SellerID != uint64(f.seller.ID) {
		t.Errorf("transaction parties = %d->%d, want %d->%d",
			txn.SellerID, txn.BuyerID, f.seller.ID, f.buyer.ID)
	}
	if !txn.TransferAmount.Equal(dec("2000000.00")) {
		t.Errorf("transfer amount = %s, want 2000000.00", txn.TransferAmount)
	}
	if !txn.IsActive {
		t.Error("transaction not active")
	}
	if txn.Buyer.Username != "buyer" || txn.Seller.Username != "seller" {
		t.Errorf("preloaded parties = %q/%q", txn.Buyer.Username, txn.Seller.Username)
	}
	if got := transactionCount(t, db); got != 1 {
		t.Errorf("transaction count = %d, want 1", got)
	}
}

func TestBuyConservesCapital(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3333333.50"), dec("1234567.25"))
	svc := NewServiceWithRate(db, fixedRate("0.07"))

	before := f.buyerTeam.Capital.Add(f.sellerTeam.Capital)
	if _, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID)); err != nil {
		t.Fatalf("buy: %v", err)
	}

	after := teamCapital(t, db, f.buyerTeam.ID).Add(teamCapital(t, db, f.sellerTeam.ID))
	if !after.Equal(before) {
		t.Errorf("capital sum drifted: before %s, after %s", before, after)
	}
	if got := teamCapital(t, db, f.buyerTeam.ID); !got.Equal(dec("2098766.25")) {
		t.Errorf("buyer capital = %s, want 2098766.25", got)
	}
}

func TestBuyExactCapitalSucceeds(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("2000000.00"), dec("2000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	if _, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID)); err != nil {
		t.Fatalf("buy with exact capital: %v", err)
	}
	if got := teamCapital(t, db, f.buyerTeam.ID); !got.Equal(decimal.Zero) {
		t.Errorf("buyer capital = %s, want 0.00", got)
	}
}

func TestBuyInsufficientFunds(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("1000000.00"), dec("2000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	_, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	if got := teamCapital(t, db, f.buyerTeam.ID); !got.Equal(dec("1000000.00")) {
		t.Errorf("buyer capital changed: %s", got)
	}
	if got := teamCapital(t, db, f.sellerTeam.ID); !got.Equal(dec("5000000.00")) {
		t.Errorf("seller capital changed: %s", got)
	}

	var listing models.TransferListing
	if err := db.First(&listing, f.listing.ID).Error; err != nil {
		t.Fatalf("load listing: %v", err)
	}
	if !listing.IsActive {
		t.Error("listing deactivated by a failed buy")
	}

	var player models.Player
	if err := db.First(&player, f.player.ID).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	if player.TeamID != uint64(f.sellerTeam.ID) {
		t.Error("player reassigned by a failed buy")
	}
	if got := transactionCount(t, db); got != 0 {
		t.Errorf("transaction count = %d, want 0", got)
	}
}

func TestBuyOwnPlayer(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("5000000.00"), dec("1000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	_, err := svc.Buy(uint64(f.listing.ID), uint64(f.seller.ID))
	if !errors.Is(err, ErrOwnPlayer) {
		t.Fatalf("err = %v, want ErrOwnPlayer", err)
	}
	if got := teamCapital(t, db, f.sellerTeam.ID); !got.Equal(dec("5000000.00")) {
		t.Errorf("seller capital changed: %s", got)
	}
	if got := transactionCount(t, db); got != 0 {
		t.Errorf("transaction count = %d, want 0", got)
	}
}

func TestBuyUnknownListing(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3000000.00"), dec("1000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	if _, err := svc.Buy(9999, uint64(f.buyer.ID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBuyConsumedListing(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3000000.00"), dec("1000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	if _, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID)); err != nil {
		t.Fatalf("first buy: %v", err)
	}

	sellerAfter := teamCapital(t, db, f.sellerTeam.ID)
	_, err := svc.Buy(uint64(f.listing.ID), uint64(f.seller.ID))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second buy err = %v, want ErrNotFound", err)
	}
	if got := transactionCount(t, db); got != 1 {
		t.Errorf("transaction count = %d, want 1", got)
	}
	if got := teamCapital(t, db, f.sellerTeam.ID); !got.Equal(sellerAfter) {
		t.Errorf("second buy mutated capital: %s", got)
	}
}

func TestBuyCancelledListing(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3000000.00"), dec("1000000.00"))
	svc := NewServiceWithRate(db, fixedRate("0.05"))

	if err := svc.CancelListing(uint64(f.listing.ID), uint64(f.seller.ID)); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("buy after cancel err = %v, want ErrNotFound", err)
	}
}

func TestBuyAppreciatesWithinBounds(t *testing.T) {
	db := testDB(t)
	f := newFixture(t, db, dec("3000000.00"), dec("1000000.00"))
	svc := NewService(db)

	if _, err := svc.Buy(uint64(f.listing.ID), uint64(f.buyer.ID)); err != nil {
		t.Fatalf("buy: %v", err)
	}

	var player models.Player
	if err := db.First(&player, f.player.ID).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	lo := dec("1050000.00")
	hi := dec("1150000.00")
	if player.Value.LessThan(lo) || player.Value.GreaterThanOrEqual(hi) {
		t.Errorf("appreciated value %s outside [%s, %s)", player.Value, lo, hi)
	}
}

func TestUniformRateBounds(t *testing.T) {
	rate := UniformRate(dec("0.05"), dec("0.15"))
	lo := dec("0.05")
	hi := dec("0.15")
	for i := 0; i < 1000; i++ {
		r := rate()
		if r.LessThan(lo) || r.GreaterThanOrEqual(hi) {
			t.Fatalf("rate %s outside [0.05, 0.15)", r)
		}
	}
}

func TestConcurrentBuysSettleOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_txlock=immediate",
		filepath.Join(t.TempDir(), "market.db"))
	db := openDB(t, dsn)

	f := newFixture(t, db, dec("3000000.00"), dec("1000000.00"))

	// A second buyer racing for the same listing.
	rival := models.User{Username: "rival", Email: "rival@test.com"}
	mustCreate(t, db, &rival)
	rivalTeam := models.Team{UserID: uint64(rival.ID), Name: "Rivals FC", Capital: dec("3000000.00")}
	mustCreate(t, db, &rivalTeam)

	svc := NewServiceWithRate(db, fixedRate("0.05"))
	buyers := []uint64{uint64(f.buyer.ID), uint64(rival.ID)}

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, buyerID := range buyers {
		wg.Add(1)
		go func(i int, buyerID uint64) {
			defer wg.Done()
			_, errs[i] = svc.Buy(uint64(f.listing.ID), buyerID)
		}(i, buyerID)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1 (errs: %v)", won, errs)
	}
	if got := transactionCount(t, db); got != 1 {
		t.Errorf("transaction count = %d, want 1", got)
	}

	var player models.Player
	if err := db.First(&player, f.player.ID).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	total := teamCapital(t, db, f.buyerTeam.ID).
		Add(teamCapital(t, db, rivalTeam.ID)).
		Add(teamCapital(t, db, f.sellerTeam.ID))
	if !total.Equal(dec("11000000.00")) {
		t.Errorf("capital sum = %s, want 11000000.00", total)
	}
}
