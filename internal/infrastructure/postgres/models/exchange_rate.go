package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExchangeRateModel struct {
	ID            string `gorm:"primaryKey"`
	FromCurrency  string `gorm:"index:idx_rates_pair_date"`
	ToCurrency    string `gorm:"index:idx_rates_pair_date"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,8)"`
	EffectiveDate time.Time       `gorm:"index:idx_rates_pair_date"`
	CreatedAt     time.Time
}

func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}
