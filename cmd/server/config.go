package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/perawallet/pera-wallet-sub032/internal/api"
	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/logging"
	"github.com/perawallet/pera-wallet-sub032/internal/metrics"
)

type config struct {
	LogFormat      logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	HealthPort     int               `envconfig:"HEALTH_PORT" default:"8081"`
	FeeConfigPath  string            `envconfig:"FEE_CONFIG_PATH"`
	BlockCacheSize int               `envconfig:"BLOCK_CACHE_SIZE" default:"256"`
	Algod          algodConfig
	Server         api.Config
	Metrics        metrics.Config
}

type algodConfig struct {
	Address string `envconfig:"ALGOD_ADDRESS" default:"https://testnet-api.algonode.cloud"`
	Token   string `envconfig:"ALGOD_TOKEN"`
}

func newConfig() (config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}

// loadFeeConfig overrides the consensus defaults with the fields present in
// the JSON file at path.
func loadFeeConfig(path string) (fee.Config, error) {
	cfg := fee.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fee.Config{}, fmt.Errorf("failed to read fee config: %w", err)
	}
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return fee.Config{}, fmt.Errorf("failed to parse fee config: %w", err)
	}
	return cfg, nil
}
