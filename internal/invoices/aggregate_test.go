package invoices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLineItemsHappyPath(t *testing.T) {
	items, amount, err := NormalizeLineItems([]LineItemInput{
		{Description: "  Instagram post  ", Quantity: "2", UnitPrice: "500"},
		{Description: "Race appearance", Quantity: "1", UnitPrice: "1500.50"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "Instagram post", items[0].Description)
	require.Equal(t, 1, items[0].LineNo)
	require.Equal(t, 2.0, items[0].Quantity)
	require.Equal(t, 500.0, items[0].UnitPrice)

	require.Equal(t, 2, items[1].LineNo)
	require.InDelta(t, 2*500+1500.50, amount, 1e-9)
}

func TestNormalizeLineItemsDiscardsEmptyDescriptions(t *testing.T) {
	items, amount, err := NormalizeLineItems([]LineItemInput{
		{Description: "   ", Quantity: "bogus", UnitPrice: "also bogus"},
		{Description: "Kept", Quantity: "3", UnitPrice: "10"},
		{Description: "", Quantity: "1", UnitPrice: "1"},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Kept", items[0].Description)
	require.Equal(t, 1, items[0].LineNo)
	require.Equal(t, 30.0, amount)
}

func TestNormalizeLineItemsEmptyInvoice(t *testing.T) {
	cases := [][]LineItemInput{
		nil,
		{},
		{{Description: "  ", Quantity: "1", UnitPrice: "1"}},
	}
	for _, inputs := range cases {
		_, _, err := NormalizeLineItems(inputs)
		require.ErrorIs(t, err, ErrEmptyInvoice)
	}
}

func TestNormalizeLineItemsInvalidQuantity(t *testing.T) {
	for _, qty := range []string{"0", "-1", "abc", "", "NaN", "Inf", "+Inf"} {
		_, _, err := NormalizeLineItems([]LineItemInput{
			{Description: "Row", Quantity: qty, UnitPrice: "10"},
		})
		require.ErrorIs(t, err, ErrInvalidQuantity, "quantity %q", qty)
	}
}

func TestNormalizeLineItemsInvalidUnitPrice(t *testing.T) {
	for _, price := range []string{"-0.01", "abc", "", "NaN", "-Inf"} {
		_, _, err := NormalizeLineItems([]LineItemInput{
			{Description: "Row", Quantity: "1", UnitPrice: price},
		})
		require.ErrorIs(t, err, ErrInvalidUnitPrice, "price %q", price)
	}
}

func TestNormalizeLineItemsZeroPriceAllowed(t *testing.T) {
	items, amount, err := NormalizeLineItems([]LineItemInput{
		{Description: "Comp item", Quantity: "5", UnitPrice: "0"},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 0.0, amount)
}

func TestNormalizeLineItemsDenseNumbering(t *testing.T) {
	inputs := []LineItemInput{
		{Description: "a", Quantity: "1", UnitPrice: "1"},
		{Description: "", Quantity: "9", UnitPrice: "9"},
		{Description: "b", Quantity: "1", UnitPrice: "1"},
		{Description: "c", Quantity: "1", UnitPrice: "1"},
	}
	items, _, err := NormalizeLineItems(inputs)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, it := range items {
		require.Equal(t, i+1, it.LineNo)
	}
	require.Equal(t, []string{"a", "b", "c"}, []string{items[0].Description, items[1].Description, items[2].Description})
}

func TestSortItems(t *testing.T) {
	items := []LineItem{
		{LineNo: 3, Description: "c"},
		{LineNo: 1, Description: "a"},
		{LineNo: 2, Description: "b"},
	}
	SortItems(items)
	require.Equal(t, "a", items[0].Description)
	require.Equal(t, "b", items[1].Description)
	require.Equal(t, "c", items[2].Description)
}
