package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2025-07-01", want: New(2025, time.July, 1)},
		{input: "2024-02-29", want: New(2024, time.February, 29)},
		{input: "2025-7-1", wantErr: true},
		{input: "2025-13-01", wantErr: true},
		{input: "2025-02-30", wantErr: true},
		{input: "", wantErr: true},
		{input: "20250701", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.input, got.String())
		})
	}
}

func TestNew_Normalizes(t *testing.T) {
	assert.Equal(t, "2025-03-02", New(2025, time.February, 30).String())
	assert.Equal(t, "2024-12-31", New(2025, time.January, 0).String())
}

func TestCompare(t *testing.T) {
	a := MustParse("2025-01-10")
	b := MustParse("2025-01-11")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, 1, a.DaysUntil(b))
}

// The string form must sort the same way as the calendar.
func TestString_LexicalOrder(t *testing.T) {
	days := []Date{
		MustParse("2024-12-31"),
		MustParse("2025-01-09"),
		MustParse("2025-01-10"),
		MustParse("2025-10-01"),
	}
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].String(), days[i].String())
	}
}

func TestAddMonths_ClampsDay(t *testing.T) {
	assert.Equal(t, "2025-02-28", MustParse("2025-01-31").AddMonths(1).String())
	assert.Equal(t, "2024-02-29", MustParse("2024-01-31").AddMonths(1).String())
	assert.Equal(t, "2026-01-15", MustParse("2025-12-15").AddMonths(1).String())
	assert.Equal(t, "2024-12-15", MustParse("2025-01-15").AddMonths(-1).String())
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))

	d := MustParse("2025-10-17")
	assert.Equal(t, "2025-10-01", d.StartOfMonth().String())
	assert.Equal(t, "2025-10-31", d.EndOfMonth().String())
	// 2025-10-17 is a Friday.
	assert.Equal(t, "2025-10-12", d.StartOfWeek().String())

	var days []string
	for day := range MonthDays(2025, time.February) {
		days = append(days, day.String())
	}
	assert.Len(t, days, 28)
	assert.Equal(t, "2025-02-01", days[0])
	assert.Equal(t, "2025-02-28", days[27])
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		On   Date            `json:"on"`
		Days map[Date]string `json:"days"`
	}
	in := wrapper{
		On:   MustParse("2025-08-01"),
		Days: map[Date]string{MustParse("2025-08-02"): "x"},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2025-08-01","days":{"2025-08-02":"x"}}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"on":"2025-8-1"}`), &out))
}

func TestDayBounds(t *testing.T) {
	d := MustParse("2025-03-09")
	start := d.StartOfDay(time.UTC)
	end := d.EndOfDay(time.UTC)

	assert.Equal(t, d, FromTime(start))
	assert.Equal(t, d, FromTime(end))
	assert.Equal(t, d.Add(1), FromTime(end.Add(time.Nanosecond)))
}
