package models

import "errors"

var (
	ErrInvalidJSON = errors.New("invalid json")

	// Round / turn legality. Every one of these is a pure rejection: the
	// engine mutates nothing when it returns them.
	ErrRoundNotRunning   = errors.New("round not running")
	ErrRoundInProgress   = errors.New("round in progress")
	ErrNotEnoughPlayers  = errors.New("not enough players")
	ErrNotSeated         = errors.New("not seated at this table")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrAlreadyPlayed     = errors.New("already played this round")
	ErrEmptyPlay         = errors.New("empty play")
	ErrTooManyCards      = errors.New("too many cards")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrBetNotAllowed     = errors.New("betting not allowed")
	ErrInvalidBetAmount  = errors.New("invalid bet amount")
	ErrNoDiscardsLeft    = errors.New("no discards remaining")
	ErrTooManyDiscards   = errors.New("too many discards")

	// Shop / jokers.
	ErrShopIndexOutOfRange  = errors.New("shop index out of range")
	ErrJokerIndexOutOfRange = errors.New("joker index out of range")
	ErrJokerLimitReached    = errors.New("joker limit reached")

	// Tables and economy.
	ErrTableFull        = errors.New("table full")
	ErrTableNotJoinable = errors.New("table not joinable")
	ErrTableNotFound    = errors.New("table not found")
	ErrAlreadySeated    = errors.New("already seated")
	ErrDebtLimitReached = errors.New("debt limit reached")
	ErrInvalidAmount    = errors.New("invalid amount")
)
