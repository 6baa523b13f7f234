package mappers

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
)

func ToDomainRate(model *models.ExchangeRateModel) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ID:            model.ID,
		FromCurrency:  domain.Currency(model.FromCurrency),
		ToCurrency:    domain.Currency(model.ToCurrency),
		Rate:          model.Rate,
		EffectiveDate: model.EffectiveDate,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMRate(rate *domain.ExchangeRate) *models.ExchangeRateModel {
	return &models.ExchangeRateModel{
		ID:            rate.ID,
		FromCurrency:  string(rate.FromCurrency),
		ToCurrency:    string(rate.ToCurrency),
		Rate:          rate.Rate,
		EffectiveDate: rate.EffectiveDate,
		CreatedAt:     rate.CreatedAt,
	}
}
