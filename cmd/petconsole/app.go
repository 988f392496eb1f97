package main

import (
	"io"

	"pet-console/internal/adapters/catalog/httpcatalog"
	"pet-console/internal/adapters/catalog/memory"
	"pet-console/internal/config"
	"pet-console/internal/domain/pets"
	"pet-console/internal/platform/logger"
)

// app junta lo que comparten serve y tui.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	catalog pets.Catalog
}

// newApp carga config, logger y catálogo. logOut nil => stdout.
func newApp(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    cfg.Logging.App,
		Output: logOut,
	})

	catalog, err := newCatalog(cfg, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, catalog: catalog}, nil
}

// newCatalog: HTTP si hay URL, memoria si catalog.url == "memory" (modo dev).
func newCatalog(cfg *config.Config, log logger.Logger) (pets.Catalog, error) {
	if cfg.UseMemoryCatalog() {
		log.Warn("using in-memory catalog", nil)
		return memory.New(), nil
	}
	timeout, err := cfg.CatalogTimeout()
	if err != nil {
		return nil, err
	}
	return httpcatalog.New(httpcatalog.Config{
		BaseURL: cfg.Catalog.URL,
		Timeout: timeout,
	})
}
