package maintenance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-01", 6, "2024-07-01"},
		{"2023-10-15", 6, "2024-04-15"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-08-31", 1, "2024-09-30"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-05-10", 12, "2025-05-10"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-05-10", 0, "2024-05-10"},
		{"2022-01-01", 24, "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(AddMonths(day(tt.start), tt.months)))
		})
	}
}

func TestAddMonths_KeepsClockAndLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	start := time.Date(2024, time.January, 31, 9, 30, 0, 0, loc)
	got := AddMonths(start, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, loc), got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-10-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.October, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2023-02-30")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDaysUntil(t *testing.T) {
	due := day("2024-07-01")
	assert.Equal(t, 0, DaysUntil(due, due))
	assert.Equal(t, 1, DaysUntil(due, due.Add(-time.Minute)))
	assert.Equal(t, 0, DaysUntil(due, due.Add(23*time.Hour)))
	assert.Equal(t, -1, DaysUntil(due, due.Add(24*time.Hour)))
	assert.Equal(t, 182, DaysUntil(due, day("2024-01-01")))
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(day("2024-06-01"), day("2024-06-30")))
	assert.False(t, SameMonth(day("2024-06-30"), day("2024-07-01")))
	assert.False(t, SameMonth(day("2023-06-15"), day("2024-06-15")))

	// 2024-06-10 12:00 at UTC-5 is still June in UTC; July 1 stays July.
	west := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.False(t, SameMonth(west, day("2024-07-01")))
	assert.False(t, SameMonth(day("2024-07-01"), west))
	lateJune := time.Date(2024, time.June, 30, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.True(t, SameMonth(lateJune, day("2024-07-01")), "evaluated on the UTC calendar")
}

func TestStatus_TextAndJSON(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "warning", StatusWarning.String())
	assert.Equal(t, "overdue", StatusOverdue.String())

	data, err := json.Marshal(map[string]Status{"status": StatusOverdue})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"overdue"}`, string(data))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &s))
	assert.Equal(t, StatusWarning, s)
	assert.Error(t, json.Unmarshal([]byte(`"urgent"`), &s))
}

func TestWorst(t *testing.T) {
	assert.Equal(t, StatusOverdue, Worst(StatusOverdue, StatusWarning))
	assert.Equal(t, StatusOverdue, Worst(StatusWarning, StatusOverdue))
	assert.Equal(t, StatusWarning, Worst(StatusOK, StatusWarning))
	assert.Equal(t, StatusOK, Worst(StatusOK, StatusOK))
}
