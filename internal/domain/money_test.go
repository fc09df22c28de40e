package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"150.50", 15050, true},
		{"150.5", 15050, true},
		{"1200", 120000, true},
		{"0.07", 7, true},
		{"0", 0, true},
		{"-99.90", -9990, true},
		{" 42.00 ", 4200, true},
		{"150.505", 0, false},
		{"abc", 0, false},
		{"12,50", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		cents, err := ParseMoney(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.cents, cents, "input %q", tc.in)
		} else {
			assert.Error(t, err, "input %q", tc.in)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "150.50", FormatMoney(15050))
	assert.Equal(t, "0.07", FormatMoney(7))
	assert.Equal(t, "1200.00", FormatMoney(120000))
	assert.Equal(t, "-99.90", FormatMoney(-9990))
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"150.50", "0.01", "999999.99", "7.00"} {
		cents, err := ParseMoney(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatMoney(cents))
	}
}
