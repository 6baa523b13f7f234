package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type RFQConfig struct {
	Env             string `yaml:"env"`
	HTTPServer      `yaml:"http_server"`
	RFQDB           `yaml:"rfq_db"`
	LogConfig       `yaml:"log_config"`
	KafkaService    `yaml:"kafka-service"`
	RedisService    `yaml:"redis"`
	IdentityService `yaml:"identity-service"`
	CatalogService  `yaml:"catalog-service"`
	Sweep           `yaml:"sweep"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RFQDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"negotiation-events"`
}

type RedisService struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	RateTTL  time.Duration `yaml:"rate_ttl" env-default:"30s"`
}

type IdentityService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type CatalogService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Sweep struct {
	ExpiryInterval time.Duration `yaml:"expiry_interval" env-default:"30s"`
}

func MustLoad() *RFQConfig {

	// Processing env config variable and file
	configPath := os.Getenv("RFQ_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("RFQ_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg RFQConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
