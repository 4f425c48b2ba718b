package handlers

import (
	"time"

	"github.com/muhammedaliasad/fantasy-football/internal/models"
	"github.com/shopspring/decimal"
)

type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PlayerView struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Position        string          `json:"position"`
	PositionDisplay string          `json:"position_display"`
	Value           decimal.Decimal `json:"value"`
	Team            uint64          `json:"team"`
	TeamName        string          `json:"team_name"`
}

type TeamView struct {
	ID             uint            `json:"id"`
	User           UserView        `json:"user"`
	Name           string          `json:"name"`
	Capital        decimal.Decimal `json:"capital"`
	TotalTeamValue decimal.Decimal `json:"total_team_value"`
	Players        []PlayerView    `json:"players"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ListingView struct {
	ID          uint            `json:"id"`
	Player      PlayerView      `json:"player"`
	AskingPrice decimal.Decimal `json:"asking_price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionView struct {
	ID             uint            `json:"id"`
	Buyer          UserView        `json:"buyer"`
	Seller         UserView        `json:"seller"`
	Player         PlayerView      `json:"player"`
	TransferAmount decimal.Decimal `json:"transfer_amount"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func userView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func playerView(p models.Player) PlayerView {
	return PlayerView{
		ID:              p.ID,
		Name:            p.Name,
		Position:        p.Position,
		PositionDisplay: models.PositionNames[p.Position],
		Value:           p.Value,
		Team:            p.TeamID,
		TeamName:        p.Team.Name,
	}
}

func playerViews(players []models.Player) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, playerView(p))
	}
	return views
}

func teamView(t models.Team, u models.User) TeamView {
	players := t.Players
	for i := range players {
		players[i].Team.Name = t.Name
	}
	return TeamView{
		ID:             t.ID,
		User:           userView(u),
		Name:           t.Name,
		Capital:        t.Capital,
		TotalTeamValue: t.TotalValue(),
		Players:        playerViews(players),
		CreatedAt:      t.CreatedAt,
	}
}

func listingView(l models.TransferListing) ListingView {
	return ListingView{
		ID:          l.ID,
		Player:      playerView(l.Player),
		AskingPrice: l.AskingPrice,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
}

func listingViews(listings []models.TransferListing) []ListingView {
	views := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, listingView(l))
	}
	return views
}

func transactionView(t models.Transaction) TransactionView {
	return TransactionView{
		ID:             t.ID,
		Buyer:          userView(t.Buyer),
		Seller:         userView(t.Seller),
		Player:         playerView(t.Player),
		TransferAmount: t.TransferAmount,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
	}
}

func transactionViews(txns []models.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		views = append(views, transactionView(t))
	}
	return views
}
