// Package shipping resolves a delivery region to a flat fee in kobo.
package shipping

// DefaultFee applies to any region not in the table.
const DefaultFee int64 = 3500

var regionFees = map[string]int64{
	"Lagos":         2000,
	"Abuja":         2500,
	"Port Harcourt": 2800,
	"Ibadan":        2500,
	"Kano":          3000,
}

// ResolveFee returns the flat shipping fee for a region. Unknown or empty
// regions fall back to DefaultFee; there is no error path.
func ResolveFee(region string) int64 {
	if fee, ok := regionFees[region]; ok {
		return fee
	}
	return DefaultFee
}
