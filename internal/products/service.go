package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// Service exposes catalog product management operations.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	AddProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, sel ProductSelector) error
}

// ProductInput holds the normalized payload to create or update a product.
// ID is optional; updates without it match on the natural key.
type ProductInput struct {
	ID         string
	Category   string
	Item       string
	SubItem    string
	OurPrice   decimal.Decimal
	LocalPrice decimal.Decimal
}

// ProductSelector identifies an existing product by id or natural key.
type ProductSelector struct {
	ID       string
	Category string
	Item     string
	SubItem  string
}

// cacheInvalidator drops the cached catalog snapshot after a mutation.
type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type service struct {
	repo  *Repository
	cache cacheInvalidator
	logg  *logger.Logger
}

// NewService constructs a product service instance. The cache invalidator
// may be nil when no catalog cache is wired.
func NewService(repo *Repository, cache cacheInvalidator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toProductDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) AddProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	product := &models.Product{
		Category:   strings.TrimSpace(input.Category),
		Item:       strings.TrimSpace(input.Item),
		SubItem:    strings.TrimSpace(input.SubItem),
		OurPrice:   input.OurPrice,
		LocalPrice: input.LocalPrice,
	}
	if input.ID != "" {
		id, err := uuid.Parse(input.ID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
		}
		product.ID = id
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	s.invalidateCatalog(ctx)
	return toProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, ProductSelector{
		ID:       input.ID,
		Category: input.Category,
		Item:     input.Item,
		SubItem:  input.SubItem,
	})
	if err != nil {
		return nil, err
	}
	existing.Category = strings.TrimSpace(input.Category)
	existing.Item = strings.TrimSpace(input.Item)
	existing.SubItem = strings.TrimSpace(input.SubItem)
	existing.OurPrice = input.OurPrice
	existing.LocalPrice = input.LocalPrice

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	s.invalidateCatalog(ctx)
	return toProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, sel ProductSelector) error {
	existing, err := s.find(ctx, sel)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// find resolves a selector, preferring the id when present.
func (s *service) find(ctx context.Context, sel ProductSelector) (*models.Product, error) {
	if sel.ID != "" {
		id, err := uuid.Parse(sel.ID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
		}
		product, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
		}
	}
	product, err := s.repo.FindByNaturalKey(ctx,
		strings.TrimSpace(sel.Category),
		strings.TrimSpace(sel.Item),
		strings.TrimSpace(sel.SubItem))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logg.Warn(ctx, "catalog cache invalidation failed: "+err.Error())
	}
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if strings.TrimSpace(input.Item) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item is required")
	}
	if input.OurPrice.IsNegative() || input.LocalPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	return nil
}
