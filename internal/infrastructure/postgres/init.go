package postgres

import (
	"log"

	"github.com/forgeline/rfq-service/internal/config"
	"github.com/forgeline/rfq-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RFQConfig) *gorm.DB {
	dsn := cfg.RFQDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.NegotiationModel{}, &models.OfferModel{}, &models.NegotiationRuleModel{}, &models.ExchangeRateModel{})

	return db
}
