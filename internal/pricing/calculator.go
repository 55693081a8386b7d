// Package pricing computes checkout totals over cart lines. All arithmetic is
// performed on integer minor currency units so that per-group totals and the
// whole-cart total can never drift apart through rounding.
package pricing

import "agora/internal/model"

// basisPointScale is the divisor for tax rates expressed in basis points
// (1/100th of a percent).
const basisPointScale = 10_000

// Calculator derives checkout totals from configured pricing policy.
type Calculator struct {
	// TaxRateBasisPoints is the tax rate in basis points, e.g. 1000 = 10%.
	TaxRateBasisPoints int64

	// ShippingFee is the flat shipping fee in minor units.
	ShippingFee int64

	// FreeShippingThreshold is the subtotal, in minor units, at or above
	// which the shipping fee is waived.
	FreeShippingThreshold int64
}

// NewCalculator creates a calculator with the given policy.
func NewCalculator(taxRateBasisPoints, shippingFee, freeShippingThreshold int64) *Calculator {
	return &Calculator{
		TaxRateBasisPoints:    taxRateBasisPoints,
		ShippingFee:           shippingFee,
		FreeShippingThreshold: freeShippingThreshold,
	}
}

// Compute returns the totals for an arbitrary set of cart lines. It is used
// both per seller group and over the full cart; summing per-group subtotals
// equals the whole-cart subtotal exactly.
func (c *Calculator) Compute(lines []model.CartLine) model.CheckoutTotals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.Subtotal()
	}

	totals := model.CheckoutTotals{
		Subtotal: subtotal,
		Tax:      c.tax(subtotal),
	}
	if subtotal > 0 && subtotal < c.FreeShippingThreshold {
		totals.Shipping = c.ShippingFee
	}
	totals.GrandTotal = totals.Subtotal + totals.Tax + totals.Shipping

	return totals
}

// ComputeGroup returns the totals for one seller group.
func (c *Calculator) ComputeGroup(group model.SellerGroup) model.CheckoutTotals {
	return c.Compute(group.Lines)
}

// tax rounds half-up at basis-point scale.
func (c *Calculator) tax(subtotal int64) int64 {
	return (subtotal*c.TaxRateBasisPoints + basisPointScale/2) / basisPointScale
}
