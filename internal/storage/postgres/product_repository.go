package postgres

import (
	"context"
	"fmt"

	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository reads the catalog. The checkout core never writes here;
// catalog maintenance is a separate concern.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `
SELECT id, title, price_minor_usd, supplier_cost_minor_usd, sku, image
FROM products
ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.PriceMinorUSD, &p.SupplierCostMinorUSD, &p.SKU, &p.Image); err != nil {
			return nil, fmt.Errorf("%w: scan product: %v", domain.ErrPersistence, err)
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: iterate products: %v", domain.ErrPersistence, rows.Err())
	}
	return products, nil
}
