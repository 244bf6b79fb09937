package orders

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  whatsapp TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'Order Received',
  invoice_link TEXT NOT NULL DEFAULT '',
  order_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  item TEXT NOT NULL,
  sub_item TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  created_at DATETIME
);`
	adminContacts := `
CREATE TABLE IF NOT EXISTS admin_contacts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  whatsapp TEXT NOT NULL UNIQUE,
  label TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`
	for _, stmt := range []string{ordersTable, orderItems, adminContacts} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}
