package invoices

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

const defaultFilename = "invoice.pdf"

// Store keeps uploaded invoice files on the local filesystem, one
// directory per order, and hands back the public link for each file.
type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
	logg     *logger.Logger
}

// NewStore prepares the invoice directory and returns the store.
func NewStore(cfg config.InvoicesConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("invoice directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating invoice directory: %w", err)
	}
	return &Store{
		dir:      cfg.Dir,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes: int64(cfg.MaxUploadMB) << 20,
		logg:     logg,
	}, nil
}

// Dir returns the root directory files are written under.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the invoice bytes under the order's directory and returns
// the public link. Filenames are flattened to their base name; an empty
// name falls back to invoice.pdf.
func (s *Store) Save(ctx context.Context, orderID, filename string, data []byte) (string, error) {
	if orderID == "" {
		return "", errors.New("order id is required")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("invoice exceeds %d byte limit", s.maxBytes)
	}
	name := sanitizeFilename(filename)

	orderDir := filepath.Join(s.dir, orderID)
	if err := os.MkdirAll(orderDir, 0o755); err != nil {
		return "", fmt.Errorf("creating order directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(orderDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing invoice file: %w", err)
	}
	if s.logg != nil {
		s.logg.Debug(ctx, "invoice stored for "+orderID)
	}
	return s.baseURL + "/" + orderID + "/" + name, nil
}

func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return defaultFilename
	}
	return name
}

// DecodeUpload accepts either raw base64 or a data: URL (the shape the
// admin page posts for client-generated PDFs) and returns the file bytes.
func DecodeUpload(payload string) ([]byte, error) {
	raw := strings.TrimSpace(payload)
	if raw == "" {
		return nil, errors.New("empty invoice payload")
	}
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ",")
		if idx < 0 {
			return nil, errors.New("malformed data url")
		}
		raw = raw[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding invoice payload: %w", err)
	}
	return data, nil
}
