package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney_Amount(t *testing.T) {
	tests := []struct {
		money Money
		want  string
	}{
		{Money{CurrencyCode: "USD", Units: 1084, Nanos: 450000000}, "1084.45"},
		{Money{CurrencyCode: "USD", Units: 0, Nanos: 1}, "0.000000001"},
		{Money{CurrencyCode: "EUR", Units: -3, Nanos: -250000000}, "-3.25"},
		{Money{CurrencyCode: "NOK", Units: 1249}, "1249"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.money.Amount().String())
	}
}

func TestMoney_SignConsistent(t *testing.T) {
	assert.True(t, Money{Units: 5, Nanos: 10}.SignConsistent())
	assert.True(t, Money{Units: -5, Nanos: -10}.SignConsistent())
	assert.True(t, Money{Units: 0, Nanos: -10}.SignConsistent())
	assert.True(t, Money{}.SignConsistent())
	assert.False(t, Money{Units: 5, Nanos: -10}.SignConsistent())
	assert.False(t, Money{Units: -5, Nanos: 10}.SignConsistent())
}
