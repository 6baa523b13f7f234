package mappers

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
)

func ToDomainNegotiation(model *models.NegotiationModel) *domain.Negotiation {
	return &domain.Negotiation{
		ID:               model.ID,
		RequesterID:      model.RequesterID,
		ItemID:           model.ItemID,
		FulfillerID:      model.FulfillerID,
		DesiredQuantity:  model.DesiredQuantity,
		TargetPrice:      model.TargetPrice,
		DeliveryDeadline: model.DeliveryDeadline,
		Notes:            model.Notes,
		Currency:         domain.Currency(model.Currency),
		Status:           domain.NegotiationStatus(model.Status),
		CurrentRound:     model.CurrentRound,
		MaxRounds:        model.MaxRounds,
		ExpiresAt:        model.ExpiresAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMNegotiation(negotiation *domain.Negotiation) *models.NegotiationModel {
	return &models.NegotiationModel{
		ID:               negotiation.ID,
		RequesterID:      negotiation.RequesterID,
		ItemID:           negotiation.ItemID,
		FulfillerID:      negotiation.FulfillerID,
		DesiredQuantity:  negotiation.DesiredQuantity,
		TargetPrice:      negotiation.TargetPrice,
		DeliveryDeadline: negotiation.DeliveryDeadline,
		Notes:            negotiation.Notes,
		Currency:         string(negotiation.Currency),
		Status:           string(negotiation.Status),
		CurrentRound:     negotiation.CurrentRound,
		MaxRounds:        negotiation.MaxRounds,
		ExpiresAt:        negotiation.ExpiresAt,
		CreatedAt:        negotiation.CreatedAt,
		UpdatedAt:        negotiation.UpdatedAt,
	}
}
