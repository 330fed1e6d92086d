package main

import (
	"os"
	"strings"
)

type appConfig struct {
	Port         string
	SeedDemoData bool
}

func loadConfig() (appConfig, error) {
	cfg := appConfig{
		Port:         "8080",
		SeedDemoData: true,
	}

	if v, ok := lookupNonEmptyEnv("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := lookupNonEmptyEnv("SEED_DEMO_DATA"); ok {
		cfg.SeedDemoData = strings.EqualFold(v, "true")
	}

	return cfg, nil
}

func lookupNonEmptyEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
