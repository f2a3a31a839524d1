package cart

import (
	"sort"

	"github.com/google/uuid"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/pricing"
)

// Cart accumulates line items before they are committed to a session by a
// send-to-kitchen call. It has no side effects of its own; the owning
// service serializes access.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add merges into an existing identical line (summing quantity) or appends a
// new line with a fresh id. Identity is item id + instructions + modifier-id
// set + per-group combo selections, order-insensitive.
func (c *Cart) Add(item domain.MenuItemRef, qty int, modifiers []domain.Modifier, combos []domain.ComboSelection, instructions string) domain.CartLine {
	if qty <= 0 {
		qty = 1
	}

	for i := range c.lines {
		if sameSelection(&c.lines[i], item, modifiers, combos, instructions) {
			c.lines[i].Quantity += qty
			c.lines[i].Subtotal = pricing.LineSubtotal(c.lines[i].Item, c.lines[i].Quantity, c.lines[i].Modifiers, c.lines[i].Combos)
			return c.lines[i]
		}
	}

	line := domain.CartLine{
		ID:           uuid.NewString(),
		Item:         item,
		Quantity:     qty,
		Modifiers:    modifiers,
		Combos:       combos,
		Instructions: instructions,
		Subtotal:     pricing.LineSubtotal(item, qty, modifiers, combos),
	}
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes a line by id. Returns false if no such line exists.
func (c *Cart) Remove(lineID string) bool {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates a line's quantity and subtotal. A quantity of zero or
// less removes the line.
func (c *Cart) SetQuantity(lineID string, qty int) bool {
	if qty <= 0 {
		return c.Remove(lineID)
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = qty
			c.lines[i].Subtotal = pricing.LineSubtotal(c.lines[i].Item, qty, c.lines[i].Modifiers, c.lines[i].Combos)
			return true
		}
	}
	return false
}

// Lines returns a copy of the staged lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() { c.lines = nil }

// Subtotal sums the staged line subtotals.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal
	}
	return pricing.Round(sum)
}

func sameSelection(line *domain.CartLine, item domain.MenuItemRef, modifiers []domain.Modifier, combos []domain.ComboSelection, instructions string) bool {
	if line.Item.ID != item.ID || line.Instructions != instructions {
		return false
	}
	if !sameModifierSet(line.Modifiers, modifiers) {
		return false
	}
	return sameComboSelections(line.Combos, combos)
}

func sameModifierSet(a, b []domain.Modifier) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]int, len(a))
	for _, m := range a {
		ids[m.ID]++
	}
	for _, m := range b {
		ids[m.ID]--
		if ids[m.ID] < 0 {
			return false
		}
	}
	return true
}

func sameComboSelections(a, b []domain.ComboSelection) bool {
	if len(a) != len(b) {
		return false
	}
	byGroup := make(map[string][]string, len(a))
	for _, sel := range a {
		byGroup[sel.GroupID] = comboItemIDs(sel)
	}
	for _, sel := range b {
		want, ok := byGroup[sel.GroupID]
		if !ok {
			return false
		}
		got := comboItemIDs(sel)
		if len(want) != len(got) {
			return false
		}
		for i := range want {
			if want[i] != got[i] {
				return false
			}
		}
	}
	return true
}

func comboItemIDs(sel domain.ComboSelection) []string {
	ids := make([]string, 0, len(sel.Items))
	for _, it := range sel.Items {
		ids = append(ids, it.ID)
	}
	sort.Strings(ids)
	return ids
}
