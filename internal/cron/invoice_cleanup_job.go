package cron

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

const invoiceRetentionDays = 30

// orderFinder checks whether an order still exists for an invoice directory.
type orderFinder interface {
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
}

type InvoiceCleanupJobParams struct {
	Logger    *logger.Logger
	Orders    orderFinder
	Dir       string
	Retention int
}

// NewInvoiceCleanupJob builds the job that removes invoice files whose order
// no longer exists. Directories younger than the retention window are kept
// in case the order is still being backfilled.
func NewInvoiceCleanupJob(params InvoiceCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Dir == "" {
		return nil, fmt.Errorf("invoice directory required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = invoiceRetentionDays
	}
	return &invoiceCleanupJob{
		logg:      params.Logger,
		orders:    params.Orders,
		dir:       params.Dir,
		retention: retention,
		now:       time.Now,
	}, nil
}

type invoiceCleanupJob struct {
	logg      *logger.Logger
	orders    orderFinder
	dir       string
	retention int
	now       func() time.Time
}

func (j *invoiceCleanupJob) Name() string { return "invoice-cleanup" }

func (j *invoiceCleanupJob) Run(ctx context.Context) error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read invoice dir: %w", err)
	}

	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		orderID := entry.Name()
		_, err := j.orders.FindByID(ctx, orderID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("looking up order %s: %w", orderID, err)
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(j.dir, orderID)); err != nil {
			return fmt.Errorf("removing invoices for %s: %w", orderID, err)
		}
		removed++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"dirs_removed":   removed,
	})
	j.logg.Info(logCtx, "invoice cleanup complete")
	return nil
}
