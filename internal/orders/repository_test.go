package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/enums"
)

func seedOrder(t *testing.T, repo *Repository, orderID string, mutate func(*models.Order)) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderID:   orderID,
		Name:      "Asha Kumar",
		Phone:     "9876543210",
		WhatsApp:  "9876543210",
		Address:   "12 Market Road, Sivakasi",
		Subtotal:  decimal.NewFromInt(2600),
		Status:    enums.OrderStatusReceived,
		OrderDate: time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{OrderID: orderID, Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 10, UnitPrice: decimal.NewFromInt(120)},
			{OrderID: orderID, Category: "Rockets", Item: "Whistler", Qty: 4, UnitPrice: decimal.NewFromInt(350)},
		},
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, "FW-20261012-0001", nil)

	found, err := repo.FindByID(ctx, "FW-20261012-0001")
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumar", found.Name)
	require.Len(t, found.Items, 2)
	assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(2600)))

	_, err = repo.FindByID(ctx, "FW-00000000-0000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, "FW-20261012-0001", nil)
	seedOrder(t, repo, "FW-20261013-0002", func(o *models.Order) {
		o.Name = "Ravi Menon"
		o.Phone = "9123456780"
		o.Status = enums.OrderStatusFullPaid
		o.InvoiceLink = "/invoices/FW-20261013-0002.pdf"
		o.OrderDate = time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
		o.Items = []models.OrderItem{
			{OrderID: o.OrderID, Category: "Fountains", Item: "Silver Rain", Qty: 2, UnitPrice: decimal.NewFromInt(150)},
		}
	})

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "FW-20261013-0002", all[0].OrderID)

	byStatus, err := repo.List(ctx, ListFilter{Status: enums.OrderStatusFullPaid.String()})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Ravi Menon", byStatus[0].Name)

	byCategory, err := repo.List(ctx, ListFilter{Category: "Sparklers"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "FW-20261012-0001", byCategory[0].OrderID)

	withInvoice := true
	invoiced, err := repo.List(ctx, ListFilter{HasInvoice: &withInvoice})
	require.NoError(t, err)
	require.Len(t, invoiced, 1)
	assert.Equal(t, "FW-20261013-0002", invoiced[0].OrderID)

	withoutInvoice := false
	uninvoiced, err := repo.List(ctx, ListFilter{HasInvoice: &withoutInvoice})
	require.NoError(t, err)
	require.Len(t, uninvoiced, 1)
	assert.Equal(t, "FW-20261012-0001", uninvoiced[0].OrderID)

	from := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	recent, err := repo.List(ctx, ListFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "FW-20261013-0002", recent[0].OrderID)

	searched, err := repo.List(ctx, ListFilter{Search: "asha"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "FW-20261012-0001", searched[0].OrderID)

	byPhone, err := repo.List(ctx, ListFilter{Search: "9123456780"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "FW-20261013-0002", byPhone[0].OrderID)
}

func TestRepositoryUpdateStatusAndInvoice(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, "FW-20261012-0001", nil)

	require.NoError(t, repo.UpdateStatus(ctx, "FW-20261012-0001", enums.OrderStatusPartPaid))
	require.NoError(t, repo.SetInvoiceLink(ctx, "FW-20261012-0001", "/invoices/x.pdf"))

	found, err := repo.FindByID(ctx, "FW-20261012-0001")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPartPaid, found.Status)
	assert.Equal(t, "/invoices/x.pdf", found.InvoiceLink)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", enums.OrderStatusDelivered), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.SetInvoiceLink(ctx, "missing", "x"), gorm.ErrRecordNotFound)
}

func TestRepositorySummary(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, "FW-20261012-0001", nil)
	seedOrder(t, repo, "FW-20261013-0002", func(o *models.Order) {
		o.Items = []models.OrderItem{
			{OrderID: o.OrderID, Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 5, UnitPrice: decimal.NewFromInt(120)},
		}
	})

	rows, err := repo.Summary(ctx, SummaryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Quantities merged across orders, largest bucket first.
	assert.Equal(t, SummaryRow{Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 15}, rows[0])
	assert.Equal(t, int64(4), rows[1].Qty)

	filtered, err := repo.Summary(ctx, SummaryFilter{Category: "Rockets"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Whistler", filtered[0].Item)

	big, err := repo.Summary(ctx, SummaryFilter{MinQty: 10})
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, int64(15), big[0].Qty)
}

func TestRepositoryAdminContacts(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	require.NoError(t, conn.Create(&models.AdminContact{WhatsApp: "9876500001", Label: "Store"}).Error)
	require.NoError(t, conn.Create(&models.AdminContact{WhatsApp: "9876500002"}).Error)

	rows, err := repo.ListAdminContacts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Store", rows[0].Label)
}
