package repository

import (
	"errors"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/mappers"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNegotiationRepository struct {
	db *gorm.DB
}

func NewDefaultNegotiationRepository(db *gorm.DB) *DefaultNegotiationRepository {
	return &DefaultNegotiationRepository{db: db}
}

func (r *DefaultNegotiationRepository) CreateNegotiation(negotiation *domain.Negotiation) error {
	model := mappers.ToGORMNegotiation(negotiation)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	negotiation.CreatedAt = model.CreatedAt
	negotiation.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultNegotiationRepository) GetNegotiationByID(negotiationID string) (*domain.Negotiation, error) {
	var model models.NegotiationModel
	if err := r.db.Model(&models.NegotiationModel{}).Where("id = ?", negotiationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainNegotiation(&model), nil
}

func (r *DefaultNegotiationRepository) UpdateNegotiation(negotiation *domain.Negotiation) error {
	return r.db.Save(mappers.ToGORMNegotiation(negotiation)).Error
}

func (r *DefaultNegotiationRepository) ListByRequesterID(requesterID string) ([]*domain.Negotiation, error) {
	return r.list("requester_id = ?", requesterID)
}

func (r *DefaultNegotiationRepository) ListByFulfillerID(fulfillerID string) ([]*domain.Negotiation, error) {
	return r.list("fulfiller_id = ?", fulfillerID)
}

func (r *DefaultNegotiationRepository) list(query string, arg any) ([]*domain.Negotiation, error) {
	var negotiationModels []models.NegotiationModel
	if err := r.db.Model(&models.NegotiationModel{}).
		Where(query, arg).
		Order("created_at ASC").
		Find(&negotiationModels).Error; err != nil {
		return nil, err
	}

	negotiations := make([]*domain.Negotiation, len(negotiationModels))
	for i, model := range negotiationModels {
		negotiations[i] = mappers.ToDomainNegotiation(&model)
	}
	return negotiations, nil
}

func (r *DefaultNegotiationRepository) FindExpiredNegotiations(now time.Time) ([]*domain.Negotiation, error) {
	activeStatuses := []string{
		string(domain.NegotiationSubmitted),
		string(domain.NegotiationUnderReview),
		string(domain.NegotiationCountered),
	}

	var negotiationModels []models.NegotiationModel
	if err := r.db.Model(&models.NegotiationModel{}).
		Where("status IN ?", activeStatuses).
		Where("expires_at < ?", now).
		Find(&negotiationModels).Error; err != nil {
		return nil, err
	}

	negotiations := make([]*domain.Negotiation, len(negotiationModels))
	for i, model := range negotiationModels {
		negotiations[i] = mappers.ToDomainNegotiation(&model)
	}
	return negotiations, nil
}

// ApplyDecision writes the mutated negotiation, the requester's offer, and
// the optional system counter in one transaction. Either everything lands or
// nothing does.
func (r *DefaultNegotiationRepository) ApplyDecision(negotiation *domain.Negotiation, offer *domain.Offer, counter *domain.Offer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(mappers.ToGORMNegotiation(negotiation)).Error; err != nil {
			return err
		}

		offerModel := mappers.ToGORMOffer(offer)
		if err := tx.Create(offerModel).Error; err != nil {
			return err
		}
		offer.CreatedAt = offerModel.CreatedAt

		if counter != nil {
			counterModel := mappers.ToGORMOffer(counter)
			if err := tx.Create(counterModel).Error; err != nil {
				return err
			}
			counter.CreatedAt = counterModel.CreatedAt
		}

		return nil
	})
}
