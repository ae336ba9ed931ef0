package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/perawallet/pera-wallet-sub032/internal/logging"
	"github.com/perawallet/pera-wallet-sub032/internal/metrics"
)

type config struct {
	LogFormat      logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	HealthPort     int               `envconfig:"HEALTH_PORT" default:"8081"`
	Addresses      []string          `envconfig:"REWARD_ADDRESSES" required:"true"`
	BlockCacheSize int               `envconfig:"BLOCK_CACHE_SIZE" default:"256"`
	RetryInterval  time.Duration     `envconfig:"ROUND_RETRY_INTERVAL" default:"5s"`
	Algod          algodConfig
	Metrics        metrics.Config
}

type algodConfig struct {
	Address string `envconfig:"ALGOD_ADDRESS" default:"https://testnet-api.algonode.cloud"`
	Token   string `envconfig:"ALGOD_TOKEN"`
}

func newConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
