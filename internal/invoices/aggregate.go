package invoices

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// LineItemInput is a raw line-item row as submitted by a form. Quantity and
// unit price arrive as text and are parsed during normalization.
type LineItemInput struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// NormalizeLineItems validates raw rows and produces the persistable item set
// plus the derived invoice amount.
//
// Rows whose description is empty after trimming are discarded. The remaining
// rows keep their submitted order; line numbers are assigned densely starting
// at 1. The returned amount is the sum of quantity times unit price over the
// validated rows.
func NormalizeLineItems(inputs []LineItemInput) ([]LineItem, float64, error) {
	items := make([]LineItem, 0, len(inputs))
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			continue
		}
		qty, err := parseFinite(in.Quantity)
		if err != nil || qty <= 0 {
			return nil, 0, fmt.Errorf("%w: line %d", ErrInvalidQuantity, len(items)+1)
		}
		price, err := parseFinite(in.UnitPrice)
		if err != nil || price < 0 {
			return nil, 0, fmt.Errorf("%w: line %d", ErrInvalidUnitPrice, len(items)+1)
		}
		items = append(items, LineItem{
			LineNo:      len(items) + 1,
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	if len(items) == 0 {
		return nil, 0, ErrEmptyInvoice
	}

	var amount float64
	for _, it := range items {
		amount += it.Total()
	}
	return items, amount, nil
}

// SortItems orders items by line number ascending. Repositories return rows
// already ordered; this is the defensive pass applied before display or print.
func SortItems(items []LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LineNo < items[j].LineNo
	})
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite: %q", s)
	}
	return v, nil
}
