package setup

import (
	"github.com/forgeline/rfq-service/internal/infrastructure/metrics"
	"github.com/forgeline/rfq-service/internal/locker"
	"github.com/forgeline/rfq-service/internal/usecase"
	"github.com/forgeline/rfq-service/internal/usecase/engine"
)

type Usecases struct {
	Negotiations usecase.NegotiationUsecase
	Offers       usecase.OfferUsecase
	Rules        usecase.NegotiationRuleUsecase
	Currency     usecase.CurrencyUsecase
}

// InitializeUsecases wires the use-case layer. The currency usecase doubles as
// the engine's converter; the keyed mutex is shared between the offer path and
// the expiry sweep so both serialize on the same negotiation.
func InitializeUsecases(deps *Dependencies) *Usecases {
	locks := locker.NewKeyedMutex()
	negotiationMetrics := metrics.NewNegotiationMetrics()

	currencyUsecase := usecase.NewDefaultCurrencyUsecase(deps.Repositories.RateRepo, deps.RateCache)
	negotiationEngine := engine.NewNegotiationEngine(currencyUsecase)

	negotiationUsecase := usecase.NewDefaultNegotiationUsecase(
		deps.Repositories.NegotiationRepo,
		deps.CatalogClient,
		deps.IdentityClient,
		deps.NotificationPublisher,
		locks,
		negotiationMetrics,
	)

	offerUsecase := usecase.NewDefaultOfferUsecase(
		deps.Repositories.NegotiationRepo,
		deps.Repositories.OfferRepo,
		deps.Repositories.RuleRepo,
		negotiationEngine,
		deps.NotificationPublisher,
		locks,
		negotiationMetrics,
	)

	ruleUsecase := usecase.NewDefaultNegotiationRuleUsecase(
		deps.Repositories.RuleRepo,
		deps.CatalogClient,
	)

	return &Usecases{
		Negotiations: negotiationUsecase,
		Offers:       offerUsecase,
		Rules:        ruleUsecase,
		Currency:     currencyUsecase,
	}
}
