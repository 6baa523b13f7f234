package offerdto

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/shopspring/decimal"
)

type SubmitOfferInput struct {
	ProposedPrice decimal.Decimal
	ProposedQty   int
	DeliveryDays  int
	Currency      domain.Currency
}
