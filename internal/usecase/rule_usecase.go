package usecase

import (
	"context"
	"fmt"

	"github.com/forgeline/rfq-service/internal/domain"
	ruledto "github.com/forgeline/rfq-service/internal/usecase/dto/rule"
	"github.com/jaevor/go-nanoid"
)

type NegotiationRuleUsecase interface {
	CreateRule(ctx context.Context, ownerID string, input *ruledto.RuleInput) (*domain.NegotiationRule, error)
	UpdateRule(ctx context.Context, ruleID, ownerID string, input *ruledto.RuleInput) (*domain.NegotiationRule, error)
	DeleteRule(ctx context.Context, ruleID, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.NegotiationRule, error)
}

type DefaultNegotiationRuleUsecase struct {
	ruleRepo      domain.NegotiationRuleRepository
	catalogClient domain.CatalogClient
}

func NewDefaultNegotiationRuleUsecase(
	ruleRepo domain.NegotiationRuleRepository,
	catalogClient domain.CatalogClient,
) *DefaultNegotiationRuleUsecase {
	return &DefaultNegotiationRuleUsecase{
		ruleRepo:      ruleRepo,
		catalogClient: catalogClient,
	}
}

func (uc *DefaultNegotiationRuleUsecase) CreateRule(ctx context.Context, ownerID string, input *ruledto.RuleInput) (*domain.NegotiationRule, error) {
	item, err := uc.catalogClient.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("resolving item %s: %w", input.ItemID, err)
	}
	if item.FulfillerID != ownerID {
		return nil, fmt.Errorf("%w: rules can only be set for owned items", domain.ErrForbidden)
	}

	existing, err := uc.ruleRepo.GetRuleByOwnerAndItem(ownerID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRuleAlreadyExists
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	maxRounds := input.MaxRounds
	if maxRounds == 0 {
		maxRounds = domain.DefaultMaxRounds
	}

	rule := &domain.NegotiationRule{
		ID:                  idGenerator(),
		OwnerID:             ownerID,
		ItemID:              input.ItemID,
		PriceFloor:          input.PriceFloor,
		AutoAcceptThreshold: input.AutoAcceptThreshold,
		MaxDeliveryDays:     input.MaxDeliveryDays,
		MaxRounds:           maxRounds,
		VolumeDiscountPct:   input.VolumeDiscountPct,
		VolumeThreshold:     input.VolumeThreshold,
		Currency:            input.Currency,
	}

	// The floor/threshold invariant is enforced here, never at evaluation time.
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.CreateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *DefaultNegotiationRuleUsecase) UpdateRule(ctx context.Context, ruleID, ownerID string, input *ruledto.RuleInput) (*domain.NegotiationRule, error) {
	rule, err := uc.ruleRepo.GetRuleByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: rules can only be managed by their owner", domain.ErrForbidden)
	}

	rule.PriceFloor = input.PriceFloor
	rule.AutoAcceptThreshold = input.AutoAcceptThreshold
	rule.MaxDeliveryDays = input.MaxDeliveryDays
	if input.MaxRounds != 0 {
		rule.MaxRounds = input.MaxRounds
	}
	rule.VolumeDiscountPct = input.VolumeDiscountPct
	rule.VolumeThreshold = input.VolumeThreshold
	if input.Currency != "" {
		rule.Currency = input.Currency
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.UpdateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *DefaultNegotiationRuleUsecase) DeleteRule(ctx context.Context, ruleID, ownerID string) error {
	rule, err := uc.ruleRepo.GetRuleByID(ruleID)
	if err != nil {
		return err
	}
	if rule.OwnerID != ownerID {
		return fmt.Errorf("%w: rules can only be deleted by their owner", domain.ErrForbidden)
	}
	return uc.ruleRepo.DeleteRule(ruleID)
}

func (uc *DefaultNegotiationRuleUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.NegotiationRule, error) {
	return uc.ruleRepo.ListByOwnerID(ownerID)
}
