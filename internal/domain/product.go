package domain

// Product is a catalog entry. The checkout core treats the catalog as a
// read-only collaborator: canonical prices are exposed for display but never
// substituted for caller-supplied cart prices.
type Product struct {
	ID                   string
	Title                string
	PriceMinorUSD        int64
	SupplierCostMinorUSD int64
	SKU                  string
	Image                string
}

// PricedProduct is a Product with its NGN price derived from the live
// USD->NGN rate at read time.
type PricedProduct struct {
	Product
	PriceMajorNGN float64
}
