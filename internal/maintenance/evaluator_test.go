package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// sixMonthInterval is serviced at 80000 km on 2024-01-01 and due every
// 6 months or 10000 km: next due 2024-07-01 / 90000 km.
func sixMonthInterval() Interval {
	return Interval{
		LastServiceDate:     day("2024-01-01"),
		LastServiceOdometer: 80000,
		IntervalMonths:      6,
		IntervalDistance:    10000,
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		odometer     int
		now          time.Time
		wantDays     int
		wantDistance int
		wantStatus   Status
	}{
		{"fresh service", 80000, day("2024-01-01"), 182, 10000, StatusOK},
		{"six days before due date", 80000, day("2024-06-25"), 6, 10000, StatusWarning},
		{"500 km before due distance", 89500, day("2024-01-01"), 182, 500, StatusWarning},
		{"one day past due", 80000, day("2024-07-02"), -1, 10000, StatusOverdue},
		{"past due distance", 90001, day("2024-01-01"), 182, -1, StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(sixMonthInterval(), tt.odometer, tt.now)
			assert.Equal(t, day("2024-07-01"), ev.NextDueDate)
			assert.Equal(t, 90000, ev.NextDueOdometer)
			assert.Equal(t, tt.wantDays, ev.DaysUntil)
			assert.Equal(t, tt.wantDistance, ev.DistanceUntil)
			assert.Equal(t, tt.wantStatus, ev.Status)
		})
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		odometer   int
		now        time.Time
		wantDays   int
		wantStatus Status
	}{
		{"exactly 14 days", 80000, day("2024-06-17"), 14, StatusOK},
		{"13 days", 80000, day("2024-06-18"), 13, StatusWarning},
		{"exactly 1000 km", 89000, day("2024-01-01"), 182, StatusOK},
		{"999 km", 89001, day("2024-01-01"), 182, StatusWarning},
		{"due today", 80000, day("2024-07-01"), 0, StatusWarning},
		{"zero km left", 90000, day("2024-01-01"), 182, StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(sixMonthInterval(), tt.odometer, tt.now)
			assert.Equal(t, tt.wantDays, ev.DaysUntil)
			assert.Equal(t, tt.wantStatus, ev.Status)
		})
	}
}

func TestEvaluate_DaysRoundUp(t *testing.T) {
	iv := sixMonthInterval()

	hoursBefore := day("2024-06-30").Add(20 * time.Hour)
	assert.Equal(t, 1, Evaluate(iv, 80000, hoursBefore).DaysUntil)

	hoursAfter := day("2024-07-01").Add(time.Hour)
	ev := Evaluate(iv, 80000, hoursAfter)
	assert.Equal(t, 0, ev.DaysUntil)
	assert.Equal(t, StatusWarning, ev.Status)

	dayAndHourAfter := day("2024-07-02").Add(time.Hour)
	assert.Equal(t, -1, Evaluate(iv, 80000, dayAndHourAfter).DaysUntil)
}

func TestEvaluate_Deterministic(t *testing.T) {
	now := day("2024-03-10").Add(7*time.Hour + 13*time.Minute)
	first := Evaluate(sixMonthInterval(), 84321, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(sixMonthInterval(), 84321, now))
	}
}

func TestEvaluate_DoesNotMutateInterval(t *testing.T) {
	iv := sixMonthInterval()
	before := iv
	Evaluate(iv, 95000, day("2025-01-01"))
	assert.Equal(t, before, iv)
}

func TestEvaluate_MonotonicInOdometer(t *testing.T) {
	now := day("2024-02-01")
	prev := StatusOK
	for odo := 80000; odo <= 92000; odo += 50 {
		s := Evaluate(sixMonthInterval(), odo, now).Status
		require.GreaterOrEqual(t, s, prev, "odometer %d", odo)
		prev = s
	}
	assert.Equal(t, StatusOverdue, prev)
}

func TestEvaluate_MonotonicInTime(t *testing.T) {
	prev := StatusOK
	for now := day("2024-01-01"); now.Before(day("2024-08-01")); now = now.Add(6 * time.Hour) {
		s := Evaluate(sixMonthInterval(), 80000, now).Status
		require.GreaterOrEqual(t, s, prev, "now %s", now)
		prev = s
	}
	assert.Equal(t, StatusOverdue, prev)
}

func TestPolicy_CustomThresholds(t *testing.T) {
	p := Policy{WarningDays: 30, WarningDistance: 2000}

	ev := p.Evaluate(sixMonthInterval(), 80000, day("2024-06-05"))
	assert.Equal(t, 26, ev.DaysUntil)
	assert.Equal(t, StatusWarning, ev.Status)

	ev = p.Evaluate(sixMonthInterval(), 88500, day("2024-01-01"))
	assert.Equal(t, StatusWarning, ev.Status)

	assert.Equal(t, StatusOK, Evaluate(sixMonthInterval(), 88500, day("2024-01-01")).Status)
}

func TestEvaluate_MonthEndClamp(t *testing.T) {
	iv := Interval{
		LastServiceDate:     day("2024-08-31"),
		LastServiceOdometer: 0,
		IntervalMonths:      6,
		IntervalDistance:    5000,
	}
	ev := Evaluate(iv, 0, day("2024-09-01"))
	assert.Equal(t, day("2025-02-28"), ev.NextDueDate)
}
