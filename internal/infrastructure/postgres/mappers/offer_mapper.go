package mappers

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
)

func ToDomainOffer(model *models.OfferModel) *domain.Offer {
	return &domain.Offer{
		ID:            model.ID,
		NegotiationID: model.NegotiationID,
		Proposer:      domain.ProposerType(model.Proposer),
		ProposedPrice: model.ProposedPrice,
		ProposedQty:   model.ProposedQty,
		DeliveryDays:  model.DeliveryDays,
		Status:        domain.OfferStatus(model.Status),
		RoundNumber:   model.RoundNumber,
		ReasonCode:    model.ReasonCode,
		Currency:      domain.Currency(model.Currency),
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMOffer(offer *domain.Offer) *models.OfferModel {
	return &models.OfferModel{
		ID:            offer.ID,
		NegotiationID: offer.NegotiationID,
		Proposer:      string(offer.Proposer),
		ProposedPrice: offer.ProposedPrice,
		ProposedQty:   offer.ProposedQty,
		DeliveryDays:  offer.DeliveryDays,
		Status:        string(offer.Status),
		RoundNumber:   offer.RoundNumber,
		ReasonCode:    offer.ReasonCode,
		Currency:      string(offer.Currency),
		CreatedAt:     offer.CreatedAt,
	}
}
