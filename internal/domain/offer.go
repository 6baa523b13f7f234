package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferStatus string

const (
	OfferPending   OfferStatus = "PENDING"
	OfferAccepted  OfferStatus = "ACCEPTED"
	OfferRejected  OfferStatus = "REJECTED"
	OfferCountered OfferStatus = "COUNTERED"
	OfferExpired   OfferStatus = "EXPIRED"
)

type ProposerType string

const (
	ProposerRequester ProposerType = "REQUESTER"
	ProposerSystem    ProposerType = "SYSTEM"
)

// Reason codes attached to offers by the negotiation engine.
const (
	ReasonMaxRoundsExceeded  = "MAX_ROUNDS_EXCEEDED"
	ReasonDeliveryExceedsMax = "DELIVERY_EXCEEDS_MAX"
	ReasonPriceBelowFloor    = "PRICE_BELOW_FLOOR"
	ReasonAutoAccepted       = "AUTO_ACCEPTED"
	ReasonAutoCountered      = "AUTO_COUNTERED"
)

// Offer is one entry in a negotiation's append-only ledger. Offers are never
// mutated after creation except for status and reason code, which are set once
// by the evaluation that resolves them.
type Offer struct {
	ID            string
	NegotiationID string
	Proposer      ProposerType
	ProposedPrice decimal.Decimal
	ProposedQty   int
	DeliveryDays  int
	Status        OfferStatus
	RoundNumber   int
	ReasonCode    string
	Currency      Currency
	CreatedAt     time.Time
}

type OfferRepository interface {
	CreateOffer(offer *Offer) error
	GetOfferByID(offerID string) (*Offer, error)
	// ListByNegotiationID returns offers ordered by (round number, creation order).
	ListByNegotiationID(negotiationID string) ([]*Offer, error)
}
