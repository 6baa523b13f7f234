package repository

import (
	"errors"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/mappers"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNegotiationRuleRepository struct {
	db *gorm.DB
}

func NewDefaultNegotiationRuleRepository(db *gorm.DB) *DefaultNegotiationRuleRepository {
	return &DefaultNegotiationRuleRepository{db: db}
}

func (r *DefaultNegotiationRuleRepository) CreateRule(rule *domain.NegotiationRule) error {
	model := mappers.ToGORMRule(rule)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	rule.CreatedAt = model.CreatedAt
	rule.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultNegotiationRuleRepository) GetRuleByID(ruleID string) (*domain.NegotiationRule, error) {
	var model models.NegotiationRuleModel
	if err := r.db.Model(&models.NegotiationRuleModel{}).Where("id = ?", ruleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainRule(&model), nil
}

func (r *DefaultNegotiationRuleRepository) UpdateRule(rule *domain.NegotiationRule) error {
	return r.db.Save(mappers.ToGORMRule(rule)).Error
}

func (r *DefaultNegotiationRuleRepository) DeleteRule(ruleID string) error {
	return r.db.Delete(&models.NegotiationRuleModel{}, "id = ?", ruleID).Error
}

func (r *DefaultNegotiationRuleRepository) GetRuleByOwnerAndItem(ownerID, itemID string) (*domain.NegotiationRule, error) {
	var model models.NegotiationRuleModel
	err := r.db.Model(&models.NegotiationRuleModel{}).
		Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mappers.ToDomainRule(&model), nil
}

func (r *DefaultNegotiationRuleRepository) ListByOwnerID(ownerID string) ([]*domain.NegotiationRule, error) {
	var ruleModels []models.NegotiationRuleModel
	if err := r.db.Model(&models.NegotiationRuleModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	rules := make([]*domain.NegotiationRule, len(ruleModels))
	for i, model := range ruleModels {
		rules[i] = mappers.ToDomainRule(&model)
	}
	return rules, nil
}
