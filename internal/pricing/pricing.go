package pricing

import (
	"math"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// PackingRules decides the per-unit packing charge for takeout lines.
// Lookup order: per-item override, then per-category, then the default.
type PackingRules struct {
	PerItem     map[string]float64
	PerCategory map[string]float64
	Default     float64
}

func (r PackingRules) charge(line domain.CartLine) float64 {
	if c, ok := r.PerItem[line.Item.ID]; ok {
		return c * float64(line.Quantity)
	}
	if c, ok := r.PerCategory[line.Item.Category]; ok {
		return c * float64(line.Quantity)
	}
	return r.Default * float64(line.Quantity)
}

// Calculator owns the tax rate and packing rules for one venue.
type Calculator struct {
	taxRate float64
	packing PackingRules
}

func NewCalculator(taxRate float64, packing PackingRules) *Calculator {
	return &Calculator{taxRate: taxRate, packing: packing}
}

// UnitPrice resolves the per-unit price of a selection: base price plus
// selected modifiers plus combo upgrade/downgrade deltas.
func UnitPrice(item domain.MenuItemRef, modifiers []domain.Modifier, combos []domain.ComboSelection) float64 {
	price := item.Price
	for _, m := range modifiers {
		price += m.Price
	}
	for _, c := range combos {
		for _, it := range c.Items {
			price += it.PriceDelta
		}
	}
	return price
}

// LineSubtotal is UnitPrice times quantity, rounded to currency precision.
func LineSubtotal(item domain.MenuItemRef, qty int, modifiers []domain.Modifier, combos []domain.ComboSelection) float64 {
	return Round(UnitPrice(item, modifiers, combos) * float64(qty))
}

// Reprice recomputes subtotal, tax, packing charge and total over the whole
// order. Packing applies only to takeout and delivery. Total never goes
// below zero.
func (c *Calculator) Reprice(o *domain.Order, discount float64) {
	var subtotal float64
	for _, line := range o.Items {
		subtotal += line.Subtotal
	}
	o.Subtotal = Round(subtotal)
	o.Tax = Round(o.Subtotal * c.taxRate / 100)
	o.Discount = discount

	o.PackingCharge = 0
	if o.Type == domain.OrderTakeout || o.Type == domain.OrderDelivery {
		var packing float64
		for _, line := range o.Items {
			packing += c.packing.charge(line)
		}
		o.PackingCharge = Round(packing)
	}

	total := o.Subtotal + o.Tax + o.PackingCharge - o.Discount
	if total < 0 {
		total = 0
	}
	o.Total = Round(total)
}

// Round snaps a money amount to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
