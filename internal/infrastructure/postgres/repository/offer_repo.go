package repository

import (
	"errors"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/mappers"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOfferRepository struct {
	db *gorm.DB
}

func NewDefaultOfferRepository(db *gorm.DB) *DefaultOfferRepository {
	return &DefaultOfferRepository{db: db}
}

func (r *DefaultOfferRepository) CreateOffer(offer *domain.Offer) error {
	model := mappers.ToGORMOffer(offer)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	offer.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultOfferRepository) GetOfferByID(offerID string) (*domain.Offer, error) {
	var model models.OfferModel
	if err := r.db.Model(&models.OfferModel{}).Where("id = ?", offerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOffer(&model), nil
}

func (r *DefaultOfferRepository) ListByNegotiationID(negotiationID string) ([]*domain.Offer, error) {
	var offerModels []models.OfferModel
	if err := r.db.Model(&models.OfferModel{}).
		Where("negotiation_id = ?", negotiationID).
		Order("round_number ASC, created_at ASC, id ASC").
		Find(&offerModels).Error; err != nil {
		return nil, err
	}

	offers := make([]*domain.Offer, len(offerModels))
	for i, model := range offerModels {
		offers[i] = mappers.ToDomainOffer(&model)
	}
	return offers, nil
}
