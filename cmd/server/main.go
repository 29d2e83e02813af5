// Package main - Entry point for the compliance-cost API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"compliance-cost/adapters/model"
	"compliance-cost/adapters/storage"
	"compliance-cost/api"
	"compliance-cost/core/allocation"
	"compliance-cost/core/cache"
	"compliance-cost/core/engine"
	"compliance-cost/core/extraction"
	"compliance-cost/internal/config"
	"compliance-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "server address")
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	eng, err := buildEngine(cfg)
	if err != nil {
		logging.Error("building engine", zap.Error(err))
		os.Exit(1)
	}

	store, err := storage.Open(context.Background(), cfg.Storage.Backend, cfg.Storage.DSN)
	if err != nil {
		logging.Error("opening estimate store", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	server := api.NewServer(eng, store, version)
	logging.Info("compliance-cost server listening",
		zap.String("addr", *addr),
		zap.String("version", version),
		zap.String("storage", cfg.Storage.Backend))

	if err := http.ListenAndServe(*addr, server); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	var c cache.Cache = cache.NewMemory()
	if !cfg.Extraction.CacheEnabled {
		c = cache.Nop{}
	}

	var extractor *extraction.Extractor
	var enricher *allocation.Enricher

	if client := model.NewClient(cfg.Model); client != nil {
		extractor = extraction.NewWithModel(c, client, cfg.Model.RetryAttempts)
		enricher = allocation.NewEnricher(client, cfg.Model.RetryAttempts)
	} else {
		extractor = extraction.New(c)
	}

	if cfg.Extraction.RulesFile != "" {
		loaded, err := extraction.LoadRulesFile(cfg.Extraction.RulesFile)
		if err != nil {
			return nil, err
		}
		extractor.SetRules(extraction.MergeRules(extraction.BuiltinRules(), loaded))
	}

	return engine.New(extractor, enricher), nil
}
