package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	productsvc "github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

type execProductStub struct {
	added []productsvc.ProductInput
	err   error
}

func (s *execProductStub) ListProducts(context.Context) ([]productsvc.ProductDTO, error) {
	return nil, nil
}

func (s *execProductStub) AddProduct(ctx context.Context, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, input)
	return &productsvc.ProductDTO{Category: input.Category, Item: input.Item}, nil
}

func (s *execProductStub) UpdateProduct(ctx context.Context, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	return nil, s.err
}

func (s *execProductStub) DeleteProduct(context.Context, productsvc.ProductSelector) error {
	return s.err
}

type execOrderStub struct {
	placeErr error
	placed   []cart.OrderRequest
}

func (s *execOrderStub) PlaceOrder(ctx context.Context, req cart.OrderRequest) (*ordersvc.PlacedOrder, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	s.placed = append(s.placed, req)
	return &ordersvc.PlacedOrder{OrderID: "FW-20261012-0007"}, nil
}

func (s *execOrderStub) GetOrder(context.Context, string) (*ordersvc.OrderDTO, error) {
	return nil, nil
}

func (s *execOrderStub) ListOrders(context.Context, ordersvc.ListFilter) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{{
		OrderID:     "FW-20261012-0001",
		Name:        "Asha Kumar",
		Phone:       "9876543210",
		WhatsApp:    "9876543210",
		Address:     "12 Market Road, Sivakasi",
		Subtotal:    decimal.NewFromInt(2600),
		Status:      "Part Paid",
		InvoiceLink: "/invoices/FW-20261012-0001/invoice.pdf",
		OrderDate:   time.Date(2026, 10, 12, 9, 30, 0, 0, time.UTC),
		Items: []ordersvc.OrderItemDTO{{
			Category:  "Sparklers",
			Item:      "Gold 12cm",
			SubItem:   "Box of 10",
			Qty:       20,
			UnitPrice: decimal.NewFromInt(130),
			LineTotal: decimal.NewFromInt(2600),
		}},
	}}, nil
}

func (s *execOrderStub) UpdateStatus(context.Context, string, string) (*ordersvc.OrderDTO, error) {
	return nil, nil
}

func (s *execOrderStub) Summary(context.Context, ordersvc.SummaryFilter) ([]ordersvc.SummaryRow, error) {
	return []ordersvc.SummaryRow{{Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 40}}, nil
}

func (s *execOrderStub) AttachInvoice(context.Context, string, string, []byte) (string, error) {
	return "", nil
}

func (s *execOrderStub) AdminContacts(context.Context) ([]ordersvc.AdminContactDTO, error) {
	return []ordersvc.AdminContactDTO{
		{WhatsApp: "9876543210", Label: "Owner"},
		{WhatsApp: "9876543211"},
	}, nil
}

func execGet(t *testing.T, svcs ExecServices, action string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/exec?action="+action, nil)
	rec := httptest.NewRecorder()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ExecGet(svcs, logg)(rec, req)
	return rec
}

func execPostForm(t *testing.T, svcs ExecServices, payload string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"payload": {payload}}
	req := httptest.NewRequest(http.MethodPost, "/exec", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ExecPost(svcs, logg)(rec, req)
	return rec
}

func TestExecPostAddProductNormalizesAliases(t *testing.T) {
	products := &execProductStub{}
	rec := execPostForm(t, ExecServices{Products: products, Orders: &execOrderStub{}},
		`{"action":"addProduct","Category":"Sparklers","Item":"12cm","Sub Item":"Electric","Our Price":85.5,"Local Price":110}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(products.added) != 1 {
		t.Fatalf("expected one product added, got %d", len(products.added))
	}
	got := products.added[0]
	if got.Category != "Sparklers" || got.Item != "12cm" || got.SubItem != "Electric" {
		t.Fatalf("aliases not normalized: %+v", got)
	}
	if got.OurPrice.String() != "85.5" {
		t.Fatalf("unexpected price %s", got.OurPrice)
	}
}

// The storefront nests the customer under a "customer" key.
func TestExecPostPlaceOrderNestedCustomer(t *testing.T) {
	orders := &execOrderStub{}
	rec := execPostForm(t, ExecServices{Products: &execProductStub{}, Orders: orders},
		`{"action":"placeOrder","customer":{"name":"Asha Kumar","phone":"9876543210","whatsapp":"9876543210","address":"12 Market Road"},"items":[{"id":"p-1","category":"Sparklers","item":"Gold 12cm","subItem":"Box of 10","qty":20,"price":130}],"subtotal":2600}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(orders.placed) != 1 {
		t.Fatalf("expected one placed order, got %d", len(orders.placed))
	}
	req := orders.placed[0]
	if req.Customer.Name != "Asha Kumar" || req.Customer.Phone != "9876543210" {
		t.Fatalf("customer not taken from nested key: %+v", req.Customer)
	}
	if req.Customer.Address != "12 Market Road" {
		t.Fatalf("address = %q", req.Customer.Address)
	}
	if len(req.Items) != 1 || req.Items[0].Qty != 20 {
		t.Fatalf("items = %+v", req.Items)
	}
	if !req.Subtotal.Equal(decimal.NewFromInt(2600)) {
		t.Fatalf("subtotal = %s", req.Subtotal)
	}
}

func TestExecPostValidationFailureAnswers200WithMessage(t *testing.T) {
	orders := &execOrderStub{placeErr: pkgerrors.New(pkgerrors.CodeValidation, "minimum order value is ₹2500")}
	rec := execPostForm(t, ExecServices{Products: &execProductStub{}, Orders: orders},
		`{"action":"placeOrder","name":"Asha","phone":"9876543210","items":[],"subtotal":"100"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("legacy contract answers 200, got %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if !strings.Contains(body.Error, "2500") {
		t.Fatalf("validation message should surface, got %q", body.Error)
	}
}

func TestExecPostInternalFailureHidesDetails(t *testing.T) {
	orders := &execOrderStub{placeErr: pkgerrors.New(pkgerrors.CodeInternal, "pq: connection refused")}
	rec := execPostForm(t, ExecServices{Products: &execProductStub{}, Orders: orders},
		`{"action":"placeOrder","name":"Asha","phone":"9876543210","items":[],"subtotal":"2600"}`)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if strings.Contains(body.Error, "pq:") {
		t.Fatalf("internal details leaked: %q", body.Error)
	}
}

func TestExecPostMissingPayloadRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/exec", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ExecPost(ExecServices{Products: &execProductStub{}, Orders: &execOrderStub{}}, logg)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("legacy contract answers 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("expected failure body, got %s", rec.Body.String())
	}
}

// The admin page reads orders from json.data with capitalized fields and
// an Items array; this test parses the response the same way.
func TestExecGetOrdersAnswersSpreadsheetShape(t *testing.T) {
	rec := execGet(t, ExecServices{Products: &execProductStub{}, Orders: &execOrderStub{}}, "getOrders")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success || len(body.Data) != 1 {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}

	row := body.Data[0]
	if row["OrderId"] != "FW-20261012-0001" {
		t.Fatalf("OrderId = %v", row["OrderId"])
	}
	if row["Name"] != "Asha Kumar" || row["Phone"] != "9876543210" {
		t.Fatalf("customer fields missing: %v", row)
	}
	if row["Status"] != "Part Paid" {
		t.Fatalf("Status = %v", row["Status"])
	}
	if row["InvoiceLink"] != "/invoices/FW-20261012-0001/invoice.pdf" {
		t.Fatalf("InvoiceLink = %v", row["InvoiceLink"])
	}

	// Number(o.Subtotal) in the page; the field arrives as a numeric string.
	subtotal, err := strconv.ParseFloat(row["Subtotal"].(string), 64)
	if err != nil || subtotal != 2600 {
		t.Fatalf("Subtotal = %v (%v)", row["Subtotal"], err)
	}

	items, ok := row["Items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("Items = %v", row["Items"])
	}
	item := items[0].(map[string]any)
	if item["item"] != "Gold 12cm" {
		t.Fatalf("item = %v", item["item"])
	}
	if qty, ok := item["qty"].(float64); !ok || qty != 20 {
		t.Fatalf("qty = %v", item["qty"])
	}
	if _, ok := item["price"]; !ok {
		t.Fatalf("price key missing: %v", item)
	}
}

func TestExecGetSummaryUsesCountKey(t *testing.T) {
	rec := execGet(t, ExecServices{Products: &execProductStub{}, Orders: &execOrderStub{}}, "getSummary")

	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("unexpected data: %s", rec.Body.String())
	}
	row := body.Data[0]
	if row["category"] != "Sparklers" || row["item"] != "Gold 12cm" {
		t.Fatalf("row = %v", row)
	}
	if count, ok := row["count"].(float64); !ok || count != 40 {
		t.Fatalf("count = %v", row["count"])
	}
	if _, ok := row["qty"]; ok {
		t.Fatalf("summary rows must not carry a qty key: %v", row)
	}
}

// Both pages require getAdmins to be a bare JSON array of numbers.
func TestExecGetAdminsAnswersBareArray(t *testing.T) {
	rec := execGet(t, ExecServices{Products: &execProductStub{}, Orders: &execOrderStub{}}, "getAdmins")

	var numbers []string
	if err := json.Unmarshal(rec.Body.Bytes(), &numbers); err != nil {
		t.Fatalf("body is not a bare array: %s", rec.Body.String())
	}
	if len(numbers) != 2 || numbers[0] != "9876543210" || numbers[1] != "9876543211" {
		t.Fatalf("numbers = %v", numbers)
	}
}
