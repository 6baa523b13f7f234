package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type NegotiationRuleModel struct {
	ID                  string `gorm:"primaryKey"`
	OwnerID             string `gorm:"index:idx_rules_owner_item,unique"`
	ItemID              string `gorm:"index:idx_rules_owner_item,unique"`
	PriceFloor          decimal.Decimal `gorm:"type:decimal(15,2)"`
	AutoAcceptThreshold decimal.Decimal `gorm:"type:decimal(15,2)"`
	MaxDeliveryDays     int
	MaxRounds           int
	VolumeDiscountPct   decimal.Decimal `gorm:"type:decimal(5,2)"`
	VolumeThreshold     int
	Currency            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (NegotiationRuleModel) TableName() string {
	return "negotiation_rules"
}
