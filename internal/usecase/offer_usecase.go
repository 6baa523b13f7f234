package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/metrics"
	"github.com/forgeline/rfq-service/internal/locker"
	offerdto "github.com/forgeline/rfq-service/internal/usecase/dto/offer"
	"github.com/forgeline/rfq-service/internal/usecase/engine"
	"github.com/jaevor/go-nanoid"
)

type OfferUsecase interface {
	SubmitOffer(ctx context.Context, negotiationID, requesterID string, input *offerdto.SubmitOfferInput) (*domain.Offer, error)
	ListByNegotiation(ctx context.Context, negotiationID string) ([]*domain.Offer, error)
}

// DefaultOfferUsecase orchestrates offer submission: eligibility checks, round
// bookkeeping, engine evaluation, and atomic decision application.
type DefaultOfferUsecase struct {
	negotiationRepo domain.NegotiationRepository
	offerRepo       domain.OfferRepository
	ruleRepo        domain.NegotiationRuleRepository
	engine          *engine.NegotiationEngine
	publisher       domain.NotificationPublisher
	locks           *locker.KeyedMutex
	metrics         *metrics.NegotiationMetrics
}

func NewDefaultOfferUsecase(
	negotiationRepo domain.NegotiationRepository,
	offerRepo domain.OfferRepository,
	ruleRepo domain.NegotiationRuleRepository,
	negotiationEngine *engine.NegotiationEngine,
	publisher domain.NotificationPublisher,
	locks *locker.KeyedMutex,
	negotiationMetrics *metrics.NegotiationMetrics,
) *DefaultOfferUsecase {
	return &DefaultOfferUsecase{
		negotiationRepo: negotiationRepo,
		offerRepo:       offerRepo,
		ruleRepo:        ruleRepo,
		engine:          negotiationEngine,
		publisher:       publisher,
		locks:           locks,
		metrics:         negotiationMetrics,
	}
}

// SubmitOffer runs the whole submission under the negotiation's lock: two
// concurrent submissions can never observe the same round, and the expiry
// sweep can never expire a negotiation mid-decision.
func (uc *DefaultOfferUsecase) SubmitOffer(ctx context.Context, negotiationID, requesterID string, input *offerdto.SubmitOfferInput) (*domain.Offer, error) {
	unlock := uc.locks.Lock(negotiationID)
	defer unlock()

	started := time.Now()

	negotiation, err := uc.negotiationRepo.GetNegotiationByID(negotiationID)
	if err != nil {
		return nil, err
	}

	if negotiation.RequesterID != requesterID {
		return nil, fmt.Errorf("%w: only the negotiation owner can submit offers", domain.ErrForbidden)
	}
	if !negotiation.Status.IsProposable() {
		return nil, fmt.Errorf("%w: status %s", domain.ErrNotProposable, negotiation.Status)
	}
	if negotiation.CurrentRound >= negotiation.MaxRounds {
		return nil, fmt.Errorf("%w: %d", domain.ErrMaxRoundsReached, negotiation.MaxRounds)
	}
	if !input.Currency.IsSupported() {
		return nil, fmt.Errorf("%w: unsupported currency %s", domain.ErrBusinessRuleViolation, input.Currency)
	}
	if input.ProposedQty <= 0 || input.DeliveryDays <= 0 || !input.ProposedPrice.IsPositive() {
		return nil, fmt.Errorf("%w: price, quantity and delivery days must be positive", domain.ErrBusinessRuleViolation)
	}

	negotiation.CurrentRound++
	if err := negotiation.Transition(domain.NegotiationUnderReview); err != nil {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	offer := &domain.Offer{
		ID:            idGenerator(),
		NegotiationID: negotiation.ID,
		Proposer:      domain.ProposerRequester,
		ProposedPrice: input.ProposedPrice,
		ProposedQty:   input.ProposedQty,
		DeliveryDays:  input.DeliveryDays,
		Status:        domain.OfferPending,
		RoundNumber:   negotiation.CurrentRound,
		Currency:      input.Currency,
	}

	rule, err := uc.ruleRepo.GetRuleByOwnerAndItem(negotiation.FulfillerID, negotiation.ItemID)
	if err != nil {
		return nil, err
	}

	if rule == nil {
		// Manual path: no rule configured, the offer stays pending for the
		// fulfiller to review.
		if err := uc.negotiationRepo.ApplyDecision(negotiation, offer, nil); err != nil {
			return nil, err
		}
		uc.metrics.RecordOfferSubmitted(string(offer.Currency))
		uc.notifyOfferReceived(negotiation, offer)
		return offer, nil
	}

	decision, err := uc.engine.Evaluate(ctx, offer, negotiation, rule)
	if err != nil {
		// Nothing has been persisted yet: the round increment and the pending
		// offer are discarded wholesale, never left half-applied.
		uc.metrics.RecordEvaluationError("conversion_unavailable")
		return nil, fmt.Errorf("evaluating offer for negotiation %s: %w", negotiation.ID, err)
	}

	offer.Status = decision.OfferStatus
	offer.ReasonCode = decision.ReasonCode

	var counter *domain.Offer
	switch decision.OfferStatus {
	case domain.OfferAccepted:
		if err := negotiation.Transition(domain.NegotiationAccepted); err != nil {
			return nil, err
		}
	case domain.OfferRejected:
		if err := negotiation.Transition(domain.NegotiationRejected); err != nil {
			return nil, err
		}
	case domain.OfferCountered:
		if err := negotiation.Transition(domain.NegotiationCountered); err != nil {
			return nil, err
		}
		// The system counter lands at the same round as the offer it answers.
		counter = &domain.Offer{
			ID:            idGenerator(),
			NegotiationID: negotiation.ID,
			Proposer:      domain.ProposerSystem,
			ProposedPrice: decision.CounterPrice,
			ProposedQty:   decision.CounterQty,
			DeliveryDays:  decision.CounterDeliveryDays,
			Status:        domain.OfferPending,
			RoundNumber:   negotiation.CurrentRound,
			ReasonCode:    domain.ReasonAutoCountered,
			Currency:      offer.Currency,
		}
	}

	if err := uc.negotiationRepo.ApplyDecision(negotiation, offer, counter); err != nil {
		return nil, err
	}

	uc.metrics.RecordOfferSubmitted(string(offer.Currency))
	uc.metrics.RecordEvaluation(string(decision.OfferStatus), decision.ReasonCode, time.Since(started).Seconds())
	uc.metrics.RecordStatus(string(negotiation.Status))

	uc.notifyOfferReceived(negotiation, offer)
	uc.notifyResolution(negotiation, offer, counter)

	return offer, nil
}

func (uc *DefaultOfferUsecase) ListByNegotiation(ctx context.Context, negotiationID string) ([]*domain.Offer, error) {
	if _, err := uc.negotiationRepo.GetNegotiationByID(negotiationID); err != nil {
		return nil, err
	}
	return uc.offerRepo.ListByNegotiationID(negotiationID)
}

func (uc *DefaultOfferUsecase) notifyOfferReceived(negotiation *domain.Negotiation, offer *domain.Offer) {
	err := uc.publisher.PublishNotification(domain.NotificationEvent{
		Type:          domain.EventOfferReceived,
		NegotiationID: negotiation.ID,
		OfferID:       offer.ID,
		RecipientID:   negotiation.FulfillerID,
		ActorID:       negotiation.RequesterID,
		Text:          fmt.Sprintf("New offer at round %d: %s %s for qty %d", offer.RoundNumber, offer.ProposedPrice.StringFixed(2), offer.Currency, offer.ProposedQty),
	})
	if err != nil {
		slog.Error("failed to publish offer received event", "negotiation_id", negotiation.ID, "error", err)
	}
}

func (uc *DefaultOfferUsecase) notifyResolution(negotiation *domain.Negotiation, offer *domain.Offer, counter *domain.Offer) {
	var event domain.NotificationEvent

	switch negotiation.Status {
	case domain.NegotiationAccepted, domain.NegotiationRejected:
		event = domain.NotificationEvent{
			Type:          domain.EventNegotiationResolved,
			NegotiationID: negotiation.ID,
			OfferID:       offer.ID,
			RecipientID:   negotiation.RequesterID,
			Text:          fmt.Sprintf("Negotiation resolved: %s (%s)", negotiation.Status, offer.ReasonCode),
		}
	case domain.NegotiationCountered:
		event = domain.NotificationEvent{
			Type:          domain.EventNegotiationCountered,
			NegotiationID: negotiation.ID,
			OfferID:       counter.ID,
			RecipientID:   negotiation.RequesterID,
			Text:          fmt.Sprintf("Counter-offer at round %d: %s %s", counter.RoundNumber, counter.ProposedPrice.StringFixed(2), counter.Currency),
		}
	default:
		return
	}

	if err := uc.publisher.PublishNotification(event); err != nil {
		slog.Error("failed to publish resolution event", "negotiation_id", negotiation.ID, "error", err)
	}
}
