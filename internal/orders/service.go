package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/enums"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// Service is the order sink plus the admin-side order operations.
type Service interface {
	PlaceOrder(ctx context.Context, req cart.OrderRequest) (*PlacedOrder, error)
	GetOrder(ctx context.Context, orderID string) (*OrderDTO, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*OrderDTO, error)
	Summary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error)
	AttachInvoice(ctx context.Context, orderID, filename string, data []byte) (string, error)
	AdminContacts(ctx context.Context) ([]AdminContactDTO, error)
}

// invoiceStore persists uploaded invoice files and returns their link.
type invoiceStore interface {
	Save(ctx context.Context, orderID, filename string, data []byte) (string, error)
}

type service struct {
	repo     *Repository
	shop     config.ShopConfig
	rules    cart.Rules
	ids      *IDGenerator
	invoices invoiceStore
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs the order service. The invoice store may be nil
// when invoice uploads are not wired.
func NewService(repo *Repository, shop config.ShopConfig, ids *IDGenerator, invoices invoiceStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if ids == nil {
		return nil, fmt.Errorf("order id generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		shop:     shop,
		rules:    cart.Rules{MinimumOrderValue: decimal.NewFromInt(int64(shop.MinimumOrderValue))},
		ids:      ids,
		invoices: invoices,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// PlaceOrder validates the frozen request, persists it, and returns the
// assigned order id. Validation failures reach neither the database nor
// the caller's cart; the request's subtotal is stored as-is, never
// recomputed here.
func (s *service) PlaceOrder(ctx context.Context, req cart.OrderRequest) (*PlacedOrder, error) {
	if verr := cart.ValidateForSubmission(s.rules, req.Customer, req.Subtotal, len(req.Items)); verr != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, verr.Message).
			WithDetails(map[string]string{"reason": string(verr.Reason)})
	}

	// Every stored line carries a quantity of at least 1, and the stated
	// subtotal must equal the sum of the lines at their stated prices.
	lineSum := decimal.Zero
	for _, item := range req.Items {
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order items need a quantity of at least 1").
				WithDetails(map[string]string{"item": item.Item})
		}
		lineSum = lineSum.Add(item.LineTotal())
	}
	if !lineSum.Equal(req.Subtotal) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal does not match the order items").
			WithDetails(map[string]string{
				"subtotal": req.Subtotal.String(),
				"items":    lineSum.String(),
			})
	}

	orderID := s.ids.Next(ctx)
	order := &models.Order{
		OrderID:   orderID,
		Name:      req.Customer.Name,
		Phone:     req.Customer.Phone,
		WhatsApp:  req.Customer.WhatsApp,
		Address:   req.Customer.Address,
		Subtotal:  req.Subtotal,
		Status:    enums.OrderStatusReceived,
		OrderDate: s.now(),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Category:  item.Category,
			Item:      item.Item,
			SubItem:   item.SubItem,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting order")
	}

	ctx = s.logg.WithOrderID(ctx, orderID)
	s.logg.Info(ctx, "order placed")

	placed := &PlacedOrder{OrderID: orderID}
	if s.shop.ShopWhatsApp != "" {
		placed.WhatsAppLink = WhatsAppLink(s.shop.ShopWhatsApp, s.shop.CountryCallingCode, OrderMessage(order))
	}
	return placed, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]OrderDTO, error) {
	if filter.Status != "" {
		if _, err := enums.ParseOrderStatus(filter.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toOrderDTO(&rows[i]))
	}
	return out, nil
}

// UpdateStatus assigns the new label directly. Any of the known statuses
// may follow any other; there is no transition graph.
func (s *service) UpdateStatus(ctx context.Context, orderID, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if err := s.repo.UpdateStatus(ctx, orderID, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, orderID), "order status set to "+parsed.String())
	return s.GetOrder(ctx, orderID)
}

func (s *service) Summary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error) {
	rows, err := s.repo.Summary(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating order summary")
	}
	return rows, nil
}

// AttachInvoice stores the uploaded file and records its link on the order.
// Clients generate the invoice; the backend only keeps the bytes.
func (s *service) AttachInvoice(ctx context.Context, orderID, filename string, data []byte) (string, error) {
	if s.invoices == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "invoice storage is not configured")
	}
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invoice file is empty")
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	link, err := s.invoices.Save(ctx, order.OrderID, filename, data)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing invoice")
	}
	if err := s.repo.SetInvoiceLink(ctx, order.OrderID, link); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording invoice link")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, orderID), "invoice attached")
	return link, nil
}

func (s *service) AdminContacts(ctx context.Context) ([]AdminContactDTO, error) {
	rows, err := s.repo.ListAdminContacts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing admin contacts")
	}
	out := make([]AdminContactDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, AdminContactDTO{WhatsApp: row.WhatsApp, Label: row.Label})
	}
	return out, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}
