package market

import "errors"

var (
	// ErrNotFound covers both an absent entity and an entity the caller
	// does not own, where the two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not the listing owner.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyListed is returned when the player already has an active listing.
	ErrAlreadyListed = errors.New("player already listed")
	// ErrOwnPlayer is returned when a user tries to buy their own player.
	ErrOwnPlayer = errors.New("cannot buy own player")
	// ErrInsufficientFunds is returned when the buyer's capital cannot
	// cover the asking price.
	ErrInsufficientFunds = errors.New("insufficient capital")
)
