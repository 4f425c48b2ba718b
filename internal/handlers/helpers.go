package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	appmw "github.com/muhammedaliasad/fantasy-football/internal/middleware"
)

func currentUserID(r *http.Request) (uint64, bool) {
	id, ok := r.Context().Value(appmw.UserIDContextKey).(uint64)
	return id, ok
}

func idParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
