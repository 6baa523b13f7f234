package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type NegotiationModel struct {
	ID               string `gorm:"primaryKey"`
	RequesterID      string `gorm:"index"`
	ItemID           string `gorm:"index"`
	FulfillerID      string `gorm:"index"`
	DesiredQuantity  int
	TargetPrice      decimal.Decimal `gorm:"type:decimal(15,2)"`
	DeliveryDeadline time.Time
	Notes            string
	Currency         string
	Status           string `gorm:"index"`
	CurrentRound     int
	MaxRounds        int
	ExpiresAt        time.Time `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (NegotiationModel) TableName() string {
	return "negotiations"
}
