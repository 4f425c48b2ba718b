package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/market"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateListingRequest struct {
	PlayerID    uint64          `json:"player_id"`
	AskingPrice decimal.Decimal `json:"asking_price"`
}

func CreateListingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlayerID == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	if req.AskingPrice.LessThanOrEqual(decimal.Zero) {
		httputil.WriteError(w, http.StatusBadRequest, "asking_price must be positive")
		return
	}

	listing, err := market.NewService(store.DB).CreateListing(req.PlayerID, req.AskingPrice, userID)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "Player not found or does not belong to you")
		case errors.Is(err, market.ErrAlreadyListed):
			httputil.WriteError(w, http.StatusBadRequest, "Player is already listed for transfer")
		default:
			logger.Log.Error("failed to create listing", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to create listing")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, listingView(*listing))
}

func ListingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	mineOnly := r.URL.Query().Get("my_listings") == "true"
	listings, err := market.NewService(store.DB).ActiveListings(userID, mineOnly)
	if err != nil {
		logger.Log.Error("failed to fetch listings", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch listings")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listingViews(listings))
}

// BuyHandler settles the transfer: capital moves, the player changes
// hands and appreciates, the listing is consumed.
func BuyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "Listing not found")
		return
	}

	txn, err := market.NewService(store.DB).Buy(listingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "Listing not found")
		case errors.Is(err, market.ErrOwnPlayer):
			httputil.WriteError(w, http.StatusBadRequest, "You cannot buy your own player")
		case errors.Is(err, market.ErrInsufficientFunds):
			httputil.WriteError(w, http.StatusBadRequest, "Insufficient capital")
		default:
			logger.Log.Error("buy failed", zap.Error(err), zap.Uint64("listing_id", listingID))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to complete purchase")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Player purchased successfully",
		"transaction": transactionView(*txn),
	})
}

func CancelListingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listingID, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "Listing not found")
		return
	}

	if err := market.NewService(store.DB).CancelListing(listingID, userID); err != nil {
		switch {
		case errors.Is(err, market.ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "Listing not found")
		case errors.Is(err, market.ErrForbidden):
			httputil.WriteError(w, http.StatusForbidden, "You can only cancel your own listings")
		default:
			logger.Log.Error("cancel failed", zap.Error(err), zap.Uint64("listing_id", listingID))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to cancel listing")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transfer listing cancelled"})
}
