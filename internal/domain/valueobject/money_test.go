package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.RequireFromString("10.5"), "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, "10.50 USD", m.String())

	_, err = NewMoney(decimal.RequireFromString("-1"), "USD")
	assert.Error(t, err)
	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
	_, err = NewMoney(decimal.Zero, "EURO")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a, err := ParseMoney("100", "EUR")
	require.NoError(t, err)
	b, err := ParseMoney("40.25", "EUR")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.RequireFromString("140.25")))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.RequireFromString("59.75")))

	_, err = b.Subtract(a)
	assert.Error(t, err, "result below zero")

	doubled, err := a.Multiply(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(200)))

	usd, err := ParseMoney("1", "USD")
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoneyPersistenceRoundTrip(t *testing.T) {
	m, err := ParseMoney("1234.5", "GBP")
	require.NoError(t, err)

	v, err := m.Value()
	require.NoError(t, err)
	var scanned Money
	require.NoError(t, scanned.Scan(v))
	assert.True(t, m.Equal(scanned))

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	var decoded Money
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, m.Equal(decoded))
}

func TestMoneyPersistenceKeepsSubCentAmounts(t *testing.T) {
	m, err := ParseMoney("1000.125", "usd")
	require.NoError(t, err)

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "1000.125 USD", v)

	var scanned Money
	require.NoError(t, scanned.Scan(v))
	assert.True(t, m.Equal(scanned), "scanned %s", scanned.Amount())
	assert.Equal(t, "1000.13 USD", scanned.String())
}
