package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferModel struct {
	ID            string `gorm:"primaryKey"`
	NegotiationID string `gorm:"index"`
	Proposer      string
	ProposedPrice decimal.Decimal `gorm:"type:decimal(15,2)"`
	ProposedQty   int
	DeliveryDays  int
	Status        string
	RoundNumber   int
	ReasonCode    string
	Currency      string
	Negotiation   NegotiationModel `gorm:"foreignKey:NegotiationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time
}

func (OfferModel) TableName() string {
	return "offers"
}
