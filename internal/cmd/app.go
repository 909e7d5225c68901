package cmd

import (
	"fmt"

	"github.com/maroof-insights/storefront-dashboard/internal/chart"
	"github.com/maroof-insights/storefront-dashboard/internal/config"
	"github.com/maroof-insights/storefront-dashboard/internal/database"
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/repository"
	"github.com/maroof-insights/storefront-dashboard/internal/service"
)

// app is the wired object graph shared by every command
type app struct {
	cfg      *config.Config
	datasets *service.DatasetService
	charts   *service.ChartService
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultFileName
	}
	return config.Load(path)
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	loader := dataset.NewLoader(cfg.FetchTimeout, cfg.SheetName)
	datasets := service.NewDatasetService(
		dataset.NewSource(loader, cfg.DataURL, cfg.DataFile),
		repository.NewSnapshotRepository(database.GetDB()),
	)
	charts := service.NewChartService(datasets, chart.DefaultRenderer(), cfg.Charts)

	return &app{
		cfg:      cfg,
		datasets: datasets,
		charts:   charts,
	}, nil
}

func (a *app) Close() error {
	return database.Close()
}
