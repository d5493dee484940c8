package form

import (
	"strconv"
	"strings"
)

// Item is one row of the billing ledger.
type Item struct {
	ID          int    `json:"id"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Description string `json:"description"`
}

// Ledger is an ordered, mutable list of billing items. Identifiers are
// assigned strictly increasing and never reused, even after removals.
type Ledger struct {
	items  []Item
	nextID int
}

// NewLedger wraps the given items. The next identifier is seeded above the
// largest restored one so restored and fresh rows never collide.
func NewLedger(items []Item) *Ledger {
	next := 1
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	l := &Ledger{items: make([]Item, len(items)), nextID: next}
	copy(l.items, items)
	return l
}

// Items returns a copy of the current rows.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the number of rows.
func (l *Ledger) Len() int { return len(l.items) }

// Add appends a fresh row with quantity 1 and returns it.
func (l *Ledger) Add() Item {
	it := Item{ID: l.nextID, Quantity: 1}
	l.nextID++
	l.items = append(l.items, it)
	return it
}

// Remove drops the row with the given id. Absent ids are a no-op.
func (l *Ledger) Remove(id int) {
	for i, it := range l.items {
		if it.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Get returns the row with the given id, if present.
func (l *Ledger) Get(id int) (Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// SetQuantity coerces raw to an integer (unparseable input becomes 0;
// negative values are stored as-is) and assigns it to the row.
func (l *Ledger) SetQuantity(id int, raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = 0
	}
	l.update(id, func(it *Item) { it.Quantity = n })
}

// SetUnitPrice stores the price string verbatim; parsing happens on read.
func (l *Ledger) SetUnitPrice(id int, s string) {
	l.update(id, func(it *Item) { it.UnitPrice = s })
}

// SetDescription stores the description verbatim.
func (l *Ledger) SetDescription(id int, s string) {
	l.update(id, func(it *Item) { it.Description = s })
}

func (l *Ledger) update(id int, fn func(*Item)) {
	for i := range l.items {
		if l.items[i].ID == id {
			fn(&l.items[i])
			return
		}
	}
}

// LineTotal is quantity times the parsed unit price. It is derived on
// read and never stored.
func LineTotal(it Item) float64 {
	return float64(it.Quantity) * parsePrice(it.UnitPrice)
}

// GrandTotal sums the line totals left to right.
func (l *Ledger) GrandTotal() float64 {
	var sum float64
	for _, it := range l.items {
		sum += LineTotal(it)
	}
	return sum
}

// parsePrice reads a decimal with optional thousands separators
// ("1,000.50"). Anything unparseable, the empty string included, is 0.
func parsePrice(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
