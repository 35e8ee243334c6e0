// Package pricing computes rental totals. It is a pure function of its
// inputs and is the only place the discount formula lives; the persistence
// layer carries no pricing logic.
package pricing

import "github.com/shopspring/decimal"

// PriceScale is the number of decimal places a final price is rounded to.
// Rounding is half away from zero (decimal.Round semantics).
const PriceScale = 2

var (
	discountStep = decimal.RequireFromString("0.05")
	axisCap      = decimal.RequireFromString("0.20")
	totalCap     = decimal.RequireFromString("0.40")
	one          = decimal.NewFromInt(1)
)

// Quote is the discounted total for a rental.
type Quote struct {
	Total       decimal.Decimal
	DiscountPct decimal.Decimal
	Gross       decimal.Decimal
}

// Calculate returns the discounted total for renting itemsCount items over
// days days at basePricePerDay. Days and itemsCount are clamped to a minimum
// of 1. Each axis earns 5% per unit beyond the first, capped at 20%; the two
// are summed and capped at 40%.
func Calculate(basePricePerDay decimal.Decimal, days, itemsCount int32) Quote {
	if days < 1 {
		days = 1
	}
	if itemsCount < 1 {
		itemsCount = 1
	}

	itemsDiscount := axisDiscount(itemsCount)
	daysDiscount := axisDiscount(days)

	discount := itemsDiscount.Add(daysDiscount)
	if discount.GreaterThan(totalCap) {
		discount = totalCap
	}

	gross := basePricePerDay.Mul(decimal.NewFromInt32(days))
	total := gross.Mul(one.Sub(discount)).Round(PriceScale)

	return Quote{
		Total:       total,
		DiscountPct: discount,
		Gross:       gross,
	}
}

func axisDiscount(n int32) decimal.Decimal {
	d := discountStep.Mul(decimal.NewFromInt32(n - 1))
	if d.GreaterThan(axisCap) {
		return axisCap
	}
	return d
}
