package form

import (
	"math"
	"testing"
)

func TestLedgerIDsStrictlyIncreaseAcrossRemovals(t *testing.T) {
	l := NewLedger(nil)

	seen := map[int]bool{}
	var last int
	for i := 0; i < 5; i++ {
		it := l.Add()
		if it.ID <= last {
			t.Fatalf("id not increasing: got %d after %d", it.ID, last)
		}
		if seen[it.ID] {
			t.Fatalf("id %d reused", it.ID)
		}
		seen[it.ID] = true
		last = it.ID
	}

	// Remove everything; fresh ids must still be above everything issued.
	for id := range seen {
		l.Remove(id)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, have %d rows", l.Len())
	}
	it := l.Add()
	if it.ID <= last {
		t.Fatalf("id %d reused after removals (last issued %d)", it.ID, last)
	}
}

func TestLedgerSeedsNextIDFromRestoredItems(t *testing.T) {
	l := NewLedger([]Item{{ID: 3}, {ID: 7}})
	if it := l.Add(); it.ID != 8 {
		t.Fatalf("expected id 8 after restoring max id 7, got %d", it.ID)
	}
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name string
		item Item
		want float64
	}{
		{name: "thousands separator", item: Item{Quantity: 3, UnitPrice: "1,000"}, want: 3000},
		{name: "empty price", item: Item{Quantity: 2, UnitPrice: ""}, want: 0},
		{name: "plain decimal", item: Item{Quantity: 2, UnitPrice: "12.50"}, want: 25},
		{name: "garbage price", item: Item{Quantity: 4, UnitPrice: "abc"}, want: 0},
		{name: "negative quantity kept", item: Item{Quantity: -2, UnitPrice: "10"}, want: -20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LineTotal(tc.item); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("line total mismatch: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestGrandTotalTracksMutations(t *testing.T) {
	l := NewLedger(nil)
	a := l.Add()
	b := l.Add()
	c := l.Add()

	l.SetQuantity(a.ID, "3")
	l.SetUnitPrice(a.ID, "1,000")
	l.SetQuantity(b.ID, "2")
	l.SetUnitPrice(b.ID, "0.50")
	l.SetDescription(c.ID, "free line")

	want := 3000.0 + 1.0 + LineTotal(mustGet(t, l, c.ID))
	if got := l.GrandTotal(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("grand total mismatch: got=%v want=%v", got, want)
	}

	l.Remove(a.ID)
	want -= 3000
	if got := l.GrandTotal(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("grand total after remove: got=%v want=%v", got, want)
	}
}

func TestLedgerMutationsOnAbsentIDAreNoOps(t *testing.T) {
	l := NewLedger([]Item{{ID: 1, Quantity: 1, UnitPrice: "5"}})
	l.SetQuantity(99, "7")
	l.SetUnitPrice(99, "9")
	l.Remove(99)

	if l.Len() != 1 {
		t.Fatalf("row count changed: %d", l.Len())
	}
	it := mustGet(t, l, 1)
	if it.Quantity != 1 || it.UnitPrice != "5" {
		t.Fatalf("row mutated by absent-id ops: %+v", it)
	}
}

func TestSetQuantityCoercion(t *testing.T) {
	l := NewLedger([]Item{{ID: 1, Quantity: 1}})

	l.SetQuantity(1, "not a number")
	if it := mustGet(t, l, 1); it.Quantity != 0 {
		t.Fatalf("unparseable quantity should coerce to 0, got %d", it.Quantity)
	}
	l.SetQuantity(1, "-4")
	if it := mustGet(t, l, 1); it.Quantity != -4 {
		t.Fatalf("negative quantity should be kept, got %d", it.Quantity)
	}
}

func mustGet(t *testing.T, l *Ledger, id int) Item {
	t.Helper()
	it, ok := l.Get(id)
	if !ok {
		t.Fatalf("row %d missing", id)
	}
	return it
}
