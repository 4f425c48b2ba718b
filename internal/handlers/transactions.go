package handlers

import (
	"net/http"

	"github.com/muhammedaliasad/fantasy-football/internal/httputil"
	"github.com/muhammedaliasad/fantasy-football/internal/logger"
	"github.com/muhammedaliasad/fantasy-football/internal/market"
	"github.com/muhammedaliasad/fantasy-football/internal/store"
	"go.uber.org/zap"
)

// TransactionsHandler lists active transactions newest-first, optionally
// restricted to those where the caller is buyer or seller.
func TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	mineOnly := r.URL.Query().Get("my_transactions") == "true"
	txns, err := market.NewService(store.DB).Transactions(userID, mineOnly)
	if err != nil {
		logger.Log.Error("failed to fetch transactions", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transactionViews(txns))
}
