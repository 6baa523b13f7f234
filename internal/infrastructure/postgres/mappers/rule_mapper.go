package mappers

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
)

func ToDomainRule(model *models.NegotiationRuleModel) *domain.NegotiationRule {
	return &domain.NegotiationRule{
		ID:                  model.ID,
		OwnerID:             model.OwnerID,
		ItemID:              model.ItemID,
		PriceFloor:          model.PriceFloor,
		AutoAcceptThreshold: model.AutoAcceptThreshold,
		MaxDeliveryDays:     model.MaxDeliveryDays,
		MaxRounds:           model.MaxRounds,
		VolumeDiscountPct:   model.VolumeDiscountPct,
		VolumeThreshold:     model.VolumeThreshold,
		Currency:            domain.Currency(model.Currency),
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func ToGORMRule(rule *domain.NegotiationRule) *models.NegotiationRuleModel {
	return &models.NegotiationRuleModel{
		ID:                  rule.ID,
		OwnerID:             rule.OwnerID,
		ItemID:              rule.ItemID,
		PriceFloor:          rule.PriceFloor,
		AutoAcceptThreshold: rule.AutoAcceptThreshold,
		MaxDeliveryDays:     rule.MaxDeliveryDays,
		MaxRounds:           rule.MaxRounds,
		VolumeDiscountPct:   rule.VolumeDiscountPct,
		VolumeThreshold:     rule.VolumeThreshold,
		Currency:            string(rule.Currency),
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}
