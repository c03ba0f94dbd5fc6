package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "$0.00", FormatMoney(0))
	require.Equal(t, "$5.00", FormatMoney(5))
	require.Equal(t, "$1,234.50", FormatMoney(1234.5))
	require.Equal(t, "$2,500,000.00", FormatMoney(2500000))
}
