package app

import (
	"context"

	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/charlesegbo631-code/watchme/internal/money"
)

// ProductSource is the read-only catalog collaborator. The checkout core
// never writes products and never validates cart prices against them.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// CatalogService exposes the catalog with NGN prices derived from the live
// rate at read time. Each call pays one fresh rate lookup.
type CatalogService struct {
	products ProductSource
	rates    RateSource
}

func NewCatalogService(products ProductSource, rates RateSource) *CatalogService {
	return &CatalogService{products: products, rates: rates}
}

func (s *CatalogService) ListWithLivePricing(ctx context.Context) ([]domain.PricedProduct, error) {
	rate, err := s.rates.USDToNGN(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	priced := make([]domain.PricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, domain.PricedProduct{
			Product:       p,
			PriceMajorNGN: money.ToMajorUnits(p.PriceMinorUSD) * rate,
		})
	}
	return priced, nil
}
