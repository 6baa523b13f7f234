package negotiationdto

import (
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/shopspring/decimal"
)

type SubmitNegotiationInput struct {
	RequesterID      string
	ItemID           string
	DesiredQuantity  int
	TargetPrice      decimal.Decimal
	DeliveryDeadline time.Time
	Notes            string
	Currency         domain.Currency
}
