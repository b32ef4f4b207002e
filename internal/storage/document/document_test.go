package document

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

func TestEncodeDecode(t *testing.T) {
	snapshot := &ledger.Snapshot{
		Accounts: map[string]ledger.Account{
			"checking": {ID: "checking", Name: "Checking", Type: ledger.AccountChecking, InitialBalance: decimal.RequireFromString("12.30")},
		},
	}

	data, err := Encode(snapshot, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.True(t, decoded.Accounts["checking"].InitialBalance.Equal(decimal.RequireFromString("12.3")))
}

func TestDecode_EmptyIsNil(t *testing.T) {
	data, err := Encode(&ledger.Snapshot{}, time.Now())
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"version":99}`))
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	testCases := []struct {
		prefix string
		want   string
	}{
		{"", "alex.json"},
		{"ledgers", "ledgers/alex.json"},
		{"/ledgers/prod/", "ledgers/prod/alex.json"},
	}
	for _, tc := range testCases {
		t.Run(tc.prefix, func(t *testing.T) {
			assert.Equal(t, tc.want, ObjectKey(tc.prefix, "alex"))
		})
	}
}
