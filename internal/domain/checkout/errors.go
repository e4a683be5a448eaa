package checkout

import "errors"

var (
	// ErrMixedCart rejects a selection that mixes one-time and monthly blocks.
	ErrMixedCart          = errors.New("checkout one-time and monthly blocks separately")
	ErrEmptySelection     = errors.New("no blocks selected")
	ErrUnknownBlock       = errors.New("unknown block")
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrInvalidMode        = errors.New("invalid checkout mode")
	ErrSessionNotPending  = errors.New("checkout session is not pending")
	ErrSessionBlocksEmpty = errors.New("checkout session needs at least one block")
)
