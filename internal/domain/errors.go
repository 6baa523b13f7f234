package domain

import "errors"

// Error taxonomy. Callers distinguish invalid requests (everything except
// ErrConversionUnavailable) from evaluation failures the system could not
// complete; only the latter are worth retrying.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("actor does not own this resource")
	ErrBusinessRuleViolation = errors.New("business rule violation")
	ErrNotProposable         = errors.New("negotiation does not accept offers in its current state")
	ErrMaxRoundsReached      = errors.New("maximum negotiation rounds reached")
	ErrFloorAboveThreshold   = errors.New("price floor must not exceed auto-accept threshold")
	ErrInvalidTransition     = errors.New("invalid negotiation status transition")
	ErrConversionUnavailable = errors.New("no exchange rate available for currency pair")
	ErrInactiveItem          = errors.New("item is not active")
	ErrRuleAlreadyExists     = errors.New("negotiation rule already exists for this item")
)
