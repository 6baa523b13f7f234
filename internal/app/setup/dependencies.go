package setup

import (
	"fmt"

	"github.com/forgeline/rfq-service/internal/config"
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/cache"
	"github.com/forgeline/rfq-service/internal/infrastructure/client"
	"github.com/forgeline/rfq-service/internal/infrastructure/kafka"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config                *config.RFQConfig
	DB                    *gorm.DB
	NotificationPublisher *kafka.NotificationPublisher
	RateCache             cache.RateCache
	IdentityClient        domain.IdentityClient
	CatalogClient         domain.CatalogClient
	Repositories          *Repositories
}

type Repositories struct {
	NegotiationRepo domain.NegotiationRepository
	OfferRepo       domain.OfferRepository
	RuleRepo        domain.NegotiationRuleRepository
	RateRepo        domain.ExchangeRateRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	notificationPublisher := kafka.NewNotificationPublisher(brokers, cfg.KafkaService.Topic)

	rateCache := initRateCache(cfg)

	repos := &Repositories{
		NegotiationRepo: repository.NewDefaultNegotiationRepository(db),
		OfferRepo:       repository.NewDefaultOfferRepository(db),
		RuleRepo:        repository.NewDefaultNegotiationRuleRepository(db),
		RateRepo:        repository.NewDefaultExchangeRateRepository(db),
	}

	return &Dependencies{
		Config:                cfg,
		DB:                    db,
		NotificationPublisher: notificationPublisher,
		RateCache:             rateCache,
		IdentityClient:        client.NewHTTPIdentityClient(fmt.Sprintf("http://%s:%s", cfg.IdentityService.Host, cfg.IdentityService.Port)),
		CatalogClient:         client.NewHTTPCatalogClient(fmt.Sprintf("http://%s:%s", cfg.CatalogService.Host, cfg.CatalogService.Port)),
		Repositories:          repos,
	}, nil
}

func initRateCache(cfg *config.RFQConfig) cache.RateCache {
	if cfg.RedisService.Addr == "" {
		return cache.NoopRateCache{}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisService.Addr,
		Password: cfg.RedisService.Password,
	})
	return cache.NewRedisRateCache(redisClient, cfg.RedisService.RateTTL)
}
