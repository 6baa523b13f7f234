package repository

import (
	"errors"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/mappers"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultExchangeRateRepository struct {
	db *gorm.DB
}

func NewDefaultExchangeRateRepository(db *gorm.DB) *DefaultExchangeRateRepository {
	return &DefaultExchangeRateRepository{db: db}
}

func (r *DefaultExchangeRateRepository) CreateRate(rate *domain.ExchangeRate) error {
	model := mappers.ToGORMRate(rate)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	rate.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultExchangeRateRepository) FindLatestRate(from, to domain.Currency, asOf time.Time) (*domain.ExchangeRate, error) {
	var model models.ExchangeRateModel
	err := r.db.Model(&models.ExchangeRateModel{}).
		Where("from_currency = ? AND to_currency = ?", string(from), string(to)).
		Where("effective_date <= ?", asOf).
		Order("effective_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mappers.ToDomainRate(&model), nil
}

func (r *DefaultExchangeRateRepository) ListRates(from, to domain.Currency) ([]*domain.ExchangeRate, error) {
	var rateModels []models.ExchangeRateModel
	if err := r.db.Model(&models.ExchangeRateModel{}).
		Where("from_currency = ? AND to_currency = ?", string(from), string(to)).
		Order("effective_date ASC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]*domain.ExchangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = mappers.ToDomainRate(&model)
	}
	return rates, nil
}
