package orders

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/enums"
)

// ListFilter narrows the admin order listing. Zero values mean "no filter".
type ListFilter struct {
	Status     string
	Category   string
	HasInvoice *bool
	From       *time.Time
	To         *time.Time
	Search     string
}

// SummaryFilter narrows the quantity aggregation.
type SummaryFilter struct {
	Category string
	MinQty   int64
}

// Repository persists submitted orders and their frozen line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads an order with its items.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, applying the filter predicates.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where(
			"order_id IN (SELECT order_id FROM order_items WHERE category = ?)",
			filter.Category)
	}
	if filter.HasInvoice != nil {
		if *filter.HasInvoice {
			query = query.Where("invoice_link <> ''")
		} else {
			query = query.Where("invoice_link = ''")
		}
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(order_id) LIKE ? OR LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(address) LIKE ? OR CAST(subtotal AS TEXT) LIKE ?",
			like, like, like, like, like)
	}

	var rows []models.Order
	if err := query.Order("order_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the order's status label.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetInvoiceLink records where the uploaded invoice was stored.
func (r *Repository) SetInvoiceLink(ctx context.Context, orderID, link string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("invoice_link", link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Summary aggregates ordered quantities per (category, item, sub_item).
func (r *Repository) Summary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("category, item, sub_item AS sub_item, SUM(qty) AS qty").
		Group("category, item, sub_item")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinQty > 0 {
		query = query.Having("SUM(qty) >= ?", filter.MinQty)
	}

	var rows []SummaryRow
	err := query.Order("qty DESC, category ASC, item ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAdminContacts returns the storefront's WhatsApp contacts.
func (r *Repository) ListAdminContacts(ctx context.Context) ([]models.AdminContact, error) {
	var rows []models.AdminContact
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
