package game

import "errors"

var (
	// ErrInsufficientFunds is returned when a wager exceeds the available balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotSplittable is returned when splitting a hand that is not a pair
	ErrNotSplittable = errors.New("hand cannot be split")

	// ErrNotEligible is returned when doubling a hand that does not qualify
	ErrNotEligible = errors.New("action not eligible")

	// ErrInvalidHandSlot is returned for a hand slot the player does not hold
	ErrInvalidHandSlot = errors.New("invalid hand slot")

	// ErrReservedName is returned when a player tries to use the dealer's name
	ErrReservedName = errors.New("name is reserved for the dealer")

	// ErrShoeTooSmall is returned when a shoe cannot hold a round for every seat
	ErrShoeTooSmall = errors.New("shoe too small for the table")
)
