package catalogsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalog"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// cache is the subset of the redis client the provider needs.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogKey() string
}

type nilChecker func(error) bool

// Provider serves the product catalog from an upstream sheet endpoint,
// fronted by a TTL cache. Upstream outages degrade to an empty catalog
// rather than failing the caller.
type Provider struct {
	cfg   config.CatalogConfig
	http  *http.Client
	cache cache
	isNil nilChecker
	logg  *logger.Logger
}

// NewProvider constructs a catalog provider. The cache may be nil, in
// which case every read goes upstream.
func NewProvider(cfg config.CatalogConfig, cacheClient cache, isNil nilChecker, logg *logger.Logger) (*Provider, error) {
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("catalog upstream url required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if isNil == nil {
		isNil = func(error) bool { return false }
	}
	return &Provider{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.FetchTimeout},
		cache: cacheClient,
		isNil: isNil,
		logg:  logg,
	}, nil
}

// Products returns the current catalog. Cached snapshots are served
// until they expire; a fetch failure on a cold cache yields an empty
// slice so the storefront can still render.
func (p *Provider) Products(ctx context.Context) []cart.CatalogItem {
	if items, ok := p.fromCache(ctx); ok {
		return items
	}
	items, err := p.fetch(ctx)
	if err != nil {
		p.logg.Error(ctx, "catalog fetch failed, serving empty catalog", err)
		return []cart.CatalogItem{}
	}
	p.store(ctx, items)
	return items
}

// Refresh forces a fetch from upstream and repopulates the cache.
func (p *Provider) Refresh(ctx context.Context) ([]cart.CatalogItem, error) {
	items, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.store(ctx, items)
	return items, nil
}

// Invalidate drops the cached snapshot. Called after product mutations
// so the next read observes the change.
func (p *Provider) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	if err := p.cache.Del(ctx, p.cache.CatalogKey()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidating catalog cache")
	}
	return nil
}

func (p *Provider) fromCache(ctx context.Context) ([]cart.CatalogItem, bool) {
	if p.cache == nil {
		return nil, false
	}
	raw, err := p.cache.Get(ctx, p.cache.CatalogKey())
	if err != nil {
		if !p.isNil(err) {
			p.logg.Warn(ctx, "catalog cache read failed: "+err.Error())
		}
		return nil, false
	}
	var items []cart.CatalogItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		p.logg.Warn(ctx, "catalog cache decode failed: "+err.Error())
		return nil, false
	}
	return items, true
}

func (p *Provider) store(ctx context.Context, items []cart.CatalogItem) {
	if p.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		p.logg.Warn(ctx, "catalog cache encode failed: "+err.Error())
		return
	}
	if err := p.cache.Set(ctx, p.cache.CatalogKey(), string(raw), p.cfg.CacheTTL); err != nil {
		p.logg.Warn(ctx, "catalog cache write failed: "+err.Error())
	}
}

func (p *Provider) fetch(ctx context.Context) ([]cart.CatalogItem, error) {
	endpoint, err := url.Parse(p.cfg.UpstreamURL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parsing catalog upstream url")
	}
	q := endpoint.Query()
	q.Set("action", "getProducts")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building catalog request")
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching catalog upstream")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog upstream returned status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading catalog response")
	}
	return decodeProducts(body)
}

// decodeProducts accepts either a bare JSON array of products or an
// envelope {"success":true,"products":[...]} and normalizes each entry.
func decodeProducts(body []byte) ([]cart.CatalogItem, error) {
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		var envelope struct {
			Success  bool             `json:"success"`
			Products []map[string]any `json:"products"`
			Error    string           `json:"error"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
		}
		if envelope.Error != "" {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog upstream error: "+envelope.Error)
		}
		rows = envelope.Products
	}
	items := make([]cart.CatalogItem, 0, len(rows))
	for _, row := range rows {
		item := catalog.Product(row)
		if item.Category == "" && item.Item == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
