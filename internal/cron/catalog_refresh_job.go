package cron

import (
	"context"
	"fmt"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// catalogRefresher re-pulls the catalog snapshot from its source.
type catalogRefresher interface {
	Refresh(ctx context.Context) ([]cart.CatalogItem, error)
}

type CatalogRefreshJobParams struct {
	Logger  *logger.Logger
	Catalog catalogRefresher
}

// NewCatalogRefreshJob builds the job that keeps the cached catalog warm so
// storefront reads never pay the upstream fetch.
func NewCatalogRefreshJob(params CatalogRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog refresher required")
	}
	return &catalogRefreshJob{logg: params.Logger, catalog: params.Catalog}, nil
}

type catalogRefreshJob struct {
	logg    *logger.Logger
	catalog catalogRefresher
}

func (j *catalogRefreshJob) Name() string { return "catalog-refresh" }

func (j *catalogRefreshJob) Run(ctx context.Context) error {
	items, err := j.catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "items", len(items))
	j.logg.Info(logCtx, "catalog refresh complete")
	return nil
}
