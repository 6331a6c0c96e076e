package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/packfinderz-cart/pkg/errors"
)

// decodeSnapshot parses a persisted JSON array of items. Lines without an id
// are dropped, repeated ids keep their first occurrence, and negative
// quantities and prices are clamped to zero. The returned count reports how many lines
// were repaired or dropped.
func decodeSnapshot(raw string) ([]Item, int, error) {
	var decoded []Item
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeMalformedSnapshot, err, "decode cart snapshot")
	}

	items := make([]Item, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	repaired := 0
	for _, item := range decoded {
		if item.ID == "" {
			repaired++
			continue
		}
		if _, dup := seen[item.ID]; dup {
			repaired++
			continue
		}
		seen[item.ID] = struct{}{}
		fixed := false
		if item.Quantity != nil && *item.Quantity < 0 {
			item.Quantity = Qty(0)
			fixed = true
		}
		if item.Price.IsNegative() {
			item.Price = decimal.Zero
			fixed = true
		}
		if fixed {
			repaired++
		}
		items = append(items, item)
	}
	return items, repaired, nil
}

func encodeSnapshot(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
