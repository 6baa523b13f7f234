package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/metrics"
	"github.com/forgeline/rfq-service/internal/locker"
	negotiationdto "github.com/forgeline/rfq-service/internal/usecase/dto/negotiation"
	"github.com/jaevor/go-nanoid"
)

const defaultExpiryDays = 7

type NegotiationUsecase interface {
	SubmitNegotiation(ctx context.Context, input *negotiationdto.SubmitNegotiationInput) (*domain.Negotiation, error)
	GetNegotiationByID(ctx context.Context, negotiationID string) (*domain.Negotiation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*domain.Negotiation, error)
	ListByFulfiller(ctx context.Context, fulfillerID string) ([]*domain.Negotiation, error)
	ExpireOverdueNegotiations(ctx context.Context) (int, error)
}

type DefaultNegotiationUsecase struct {
	negotiationRepo domain.NegotiationRepository
	catalogClient   domain.CatalogClient
	identityClient  domain.IdentityClient
	publisher       domain.NotificationPublisher
	locks           *locker.KeyedMutex
	metrics         *metrics.NegotiationMetrics
}

func NewDefaultNegotiationUsecase(
	negotiationRepo domain.NegotiationRepository,
	catalogClient domain.CatalogClient,
	identityClient domain.IdentityClient,
	publisher domain.NotificationPublisher,
	locks *locker.KeyedMutex,
	negotiationMetrics *metrics.NegotiationMetrics,
) *DefaultNegotiationUsecase {
	return &DefaultNegotiationUsecase{
		negotiationRepo: negotiationRepo,
		catalogClient:   catalogClient,
		identityClient:  identityClient,
		publisher:       publisher,
		locks:           locks,
		metrics:         negotiationMetrics,
	}
}

func (uc *DefaultNegotiationUsecase) SubmitNegotiation(ctx context.Context, input *negotiationdto.SubmitNegotiationInput) (*domain.Negotiation, error) {
	item, err := uc.catalogClient.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("resolving item %s: %w", input.ItemID, err)
	}
	if item.Status != domain.ItemActive {
		return nil, domain.ErrInactiveItem
	}

	if input.DesiredQuantity <= 0 {
		return nil, fmt.Errorf("%w: desired quantity must be positive", domain.ErrBusinessRuleViolation)
	}
	if !input.TargetPrice.IsPositive() {
		return nil, fmt.Errorf("%w: target price must be positive", domain.ErrBusinessRuleViolation)
	}
	if !input.Currency.IsSupported() {
		return nil, fmt.Errorf("%w: unsupported currency %s", domain.ErrBusinessRuleViolation, input.Currency)
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	negotiation := &domain.Negotiation{
		ID:               idGenerator(),
		RequesterID:      input.RequesterID,
		ItemID:           input.ItemID,
		FulfillerID:      item.FulfillerID,
		DesiredQuantity:  input.DesiredQuantity,
		TargetPrice:      input.TargetPrice,
		DeliveryDeadline: input.DeliveryDeadline,
		Notes:            input.Notes,
		Currency:         input.Currency,
		Status:           domain.NegotiationSubmitted,
		CurrentRound:     0,
		MaxRounds:        domain.DefaultMaxRounds,
		ExpiresAt:        time.Now().AddDate(0, 0, defaultExpiryDays),
	}

	if err := uc.negotiationRepo.CreateNegotiation(negotiation); err != nil {
		return nil, err
	}

	uc.metrics.RecordNegotiationSubmitted(string(negotiation.Currency))
	uc.notifySubmitted(ctx, negotiation, item)

	return negotiation, nil
}

func (uc *DefaultNegotiationUsecase) notifySubmitted(ctx context.Context, negotiation *domain.Negotiation, item *domain.Item) {
	requesterName := negotiation.RequesterID
	if party, err := uc.identityClient.GetParty(ctx, negotiation.RequesterID); err == nil {
		requesterName = party.Name
	}

	err := uc.publisher.PublishNotification(domain.NotificationEvent{
		Type:          domain.EventNegotiationSubmitted,
		NegotiationID: negotiation.ID,
		RecipientID:   negotiation.FulfillerID,
		ActorID:       negotiation.RequesterID,
		Text:          fmt.Sprintf("%s requested a quote for %s (qty %d)", requesterName, item.Name, negotiation.DesiredQuantity),
	})
	if err != nil {
		slog.Error("failed to publish negotiation submitted event", "negotiation_id", negotiation.ID, "error", err)
	}
}

func (uc *DefaultNegotiationUsecase) GetNegotiationByID(ctx context.Context, negotiationID string) (*domain.Negotiation, error) {
	return uc.negotiationRepo.GetNegotiationByID(negotiationID)
}

func (uc *DefaultNegotiationUsecase) ListByRequester(ctx context.Context, requesterID string) ([]*domain.Negotiation, error) {
	return uc.negotiationRepo.ListByRequesterID(requesterID)
}

func (uc *DefaultNegotiationUsecase) ListByFulfiller(ctx context.Context, fulfillerID string) ([]*domain.Negotiation, error) {
	return uc.negotiationRepo.ListByFulfillerID(fulfillerID)
}

// ExpireOverdueNegotiations moves every active negotiation past its expiry
// timestamp to EXPIRED. Each negotiation is re-checked under its own lock so
// the sweep never expires one that an in-flight submission just resolved.
func (uc *DefaultNegotiationUsecase) ExpireOverdueNegotiations(ctx context.Context) (int, error) {
	now := time.Now()
	candidates, err := uc.negotiationRepo.FindExpiredNegotiations(now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, candidate := range candidates {
		if err := uc.expireOne(candidate.ID, now); err != nil {
			slog.Error("failed to expire negotiation", "negotiation_id", candidate.ID, "error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		uc.metrics.RecordExpired(expired)
		uc.metrics.RecordStatus(string(domain.NegotiationExpired))
	}
	return expired, nil
}

func (uc *DefaultNegotiationUsecase) expireOne(negotiationID string, now time.Time) error {
	unlock := uc.locks.Lock(negotiationID)
	defer unlock()

	negotiation, err := uc.negotiationRepo.GetNegotiationByID(negotiationID)
	if err != nil {
		return err
	}
	// A concurrent submission may have resolved it since the scan.
	if !negotiation.Status.IsProposable() || !negotiation.IsExpiredAt(now) {
		return nil
	}

	if err := negotiation.Transition(domain.NegotiationExpired); err != nil {
		return err
	}
	return uc.negotiationRepo.UpdateNegotiation(negotiation)
}
