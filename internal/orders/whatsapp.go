package orders

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/currency"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/phone"
)

// OrderMessage renders the WhatsApp notification text for a new order.
func OrderMessage(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", o.OrderID)
	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	if o.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.Address)
	}
	b.WriteString("\nItems:\n")
	for i, item := range o.Items {
		label := item.Item
		if item.SubItem != "" {
			label = fmt.Sprintf("%s (%s)", item.Item, item.SubItem)
		}
		fmt.Fprintf(&b, "%d. %s x%d = %s\n", i+1, label, item.Qty, currency.FormatINR(item.LineTotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s", currency.FormatINR(o.Subtotal))
	return b.String()
}

// WhatsAppLink builds a wa.me link that opens a chat with number carrying
// the given prefilled text. An empty number yields an empty link.
func WhatsAppLink(number, callingCode, text string) string {
	dialing := phone.DialingNumber(number, callingCode)
	if dialing == "" {
		return ""
	}
	return "https://wa.me/" + dialing + "?text=" + url.QueryEscape(text)
}
