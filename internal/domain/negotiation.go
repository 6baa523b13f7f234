package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type NegotiationStatus string

const (
	NegotiationSubmitted   NegotiationStatus = "SUBMITTED"
	NegotiationUnderReview NegotiationStatus = "UNDER_REVIEW"
	NegotiationCountered   NegotiationStatus = "COUNTERED"
	NegotiationAccepted    NegotiationStatus = "ACCEPTED"
	NegotiationRejected    NegotiationStatus = "REJECTED"
	NegotiationExpired     NegotiationStatus = "EXPIRED"
)

// negotiationTransitions is the closed transition table for negotiation statuses.
// Terminal statuses have no outgoing transitions.
var negotiationTransitions = map[NegotiationStatus][]NegotiationStatus{
	NegotiationSubmitted:   {NegotiationUnderReview, NegotiationExpired},
	NegotiationUnderReview: {NegotiationCountered, NegotiationAccepted, NegotiationRejected, NegotiationExpired},
	NegotiationCountered:   {NegotiationUnderReview, NegotiationExpired},
	NegotiationAccepted:    {},
	NegotiationRejected:    {},
	NegotiationExpired:     {},
}

func (s NegotiationStatus) IsTerminal() bool {
	switch s {
	case NegotiationAccepted, NegotiationRejected, NegotiationExpired:
		return true
	}
	return false
}

// IsProposable reports whether a negotiation in this status accepts new requester offers.
func (s NegotiationStatus) IsProposable() bool {
	switch s {
	case NegotiationSubmitted, NegotiationUnderReview, NegotiationCountered:
		return true
	}
	return false
}

func (s NegotiationStatus) CanTransitionTo(next NegotiationStatus) bool {
	for _, allowed := range negotiationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Negotiation is one requester's pursuit of negotiated terms for an item
// from a specific fulfiller.
type Negotiation struct {
	ID               string
	RequesterID      string
	ItemID           string
	FulfillerID      string
	DesiredQuantity  int
	TargetPrice      decimal.Decimal
	DeliveryDeadline time.Time
	Notes            string
	Currency         Currency
	Status           NegotiationStatus
	CurrentRound     int
	MaxRounds        int
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Transition moves the negotiation to next, refusing moves the
// transition table does not allow.
func (n *Negotiation) Transition(next NegotiationStatus) error {
	if !n.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	n.Status = next
	return nil
}

func (n *Negotiation) IsExpiredAt(now time.Time) bool {
	return now.After(n.ExpiresAt)
}

type NegotiationRepository interface {
	CreateNegotiation(negotiation *Negotiation) error
	GetNegotiationByID(negotiationID string) (*Negotiation, error)
	UpdateNegotiation(negotiation *Negotiation) error
	ListByRequesterID(requesterID string) ([]*Negotiation, error)
	ListByFulfillerID(fulfillerID string) ([]*Negotiation, error)
	FindExpiredNegotiations(now time.Time) ([]*Negotiation, error)
	// ApplyDecision persists the negotiation mutation, the requester's
	// resolved offer, and the optional system counter-offer as one unit
	// of work. counter may be nil.
	ApplyDecision(negotiation *Negotiation, offer *Offer, counter *Offer) error
}
