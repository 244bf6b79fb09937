package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/phone"
)

// ErrLineNotFound is returned when SetQuantity targets a key the cart does
// not hold.
var ErrLineNotFound = errors.New("cart line not found")

// Reason identifies which submission check failed.
type Reason string

const (
	ReasonBelowMinimumOrder Reason = "BELOW_MINIMUM_ORDER"
	ReasonMissingName       Reason = "MISSING_NAME"
	ReasonInvalidPhone      Reason = "INVALID_PHONE"
	ReasonInvalidWhatsApp   Reason = "INVALID_WHATSAPP"
	ReasonEmptyCart         Reason = "EMPTY_CART"
)

// ValidationError reports the first submission check that failed.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rules carries the configurable business thresholds.
type Rules struct {
	MinimumOrderValue decimal.Decimal
}

// DefaultRules returns the shop's standing rules.
func DefaultRules() Rules {
	return Rules{MinimumOrderValue: decimal.NewFromInt(2500)}
}

// ValidateForSubmission runs the submission checks in their fixed order and
// reports only the first failure: minimum order value, name, phone, WhatsApp,
// then cart non-empty. A nil return means the order may be built.
func ValidateForSubmission(rules Rules, customer Customer, subtotal decimal.Decimal, lineCount int) *ValidationError {
	if subtotal.LessThan(rules.MinimumOrderValue) {
		return &ValidationError{
			Reason:  ReasonBelowMinimumOrder,
			Message: fmt.Sprintf("minimum order value is ₹%s", rules.MinimumOrderValue.StringFixed(0)),
		}
	}
	if strings.TrimSpace(customer.Name) == "" {
		return &ValidationError{Reason: ReasonMissingName, Message: "please enter name"}
	}
	if !phone.IsTenDigits(customer.Phone) {
		return &ValidationError{Reason: ReasonInvalidPhone, Message: "phone must be 10 digits"}
	}
	if !phone.IsTenDigits(customer.WhatsApp) {
		return &ValidationError{Reason: ReasonInvalidWhatsApp, Message: "whatsapp must be 10 digits"}
	}
	if lineCount == 0 {
		return &ValidationError{Reason: ReasonEmptyCart, Message: "cart is empty"}
	}
	return nil
}

// Validate applies the submission checks to the cart's own state.
func (c *Cart) Validate(rules Rules) *ValidationError {
	return ValidateForSubmission(rules, c.customer, c.Subtotal(), c.Len())
}
