package domain

// CartItem is a caller-supplied line item. Prices arrive from the client and
// are used as-is for totals and profit splits; they are not cross-checked
// against the catalog. Amounts may be major-unit decimals or already in minor
// units, disambiguated by money.ToMinorUnits.
type CartItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	SupplierCost float64 `json:"supplierCost"`
	Quantity     int     `json:"quantity"`
}

// Customer is the buyer snapshot captured on the draft order. Optional fields
// default to the empty string, never null, to keep the ledger schema stable.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// Split is the division of a charged total between the supplier's cost share
// and the merchant's profit, all in minor units.
type Split struct {
	Total         int64
	SupplierShare int64
	Profit        int64
}
