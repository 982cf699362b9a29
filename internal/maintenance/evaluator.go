// Package maintenance computes when trucks are due for service. Everything in
// it is pure: the evaluation time is always passed in by the caller.
package maintenance

import "time"

const (
	// DefaultWarningDays is how close the due date must be to raise a warning.
	DefaultWarningDays = 14
	// DefaultWarningDistance is how close the due odometer must be, in km.
	DefaultWarningDistance = 1000
)

// Interval describes one maintenance policy: serviced at LastServiceOdometer
// on LastServiceDate, due again after IntervalMonths or IntervalDistance,
// whichever comes first. Both intervals are expected to be positive.
type Interval struct {
	LastServiceDate     time.Time
	LastServiceOdometer int
	IntervalMonths      int
	IntervalDistance    int
}

// Evaluation is the projected next service point for one Interval.
type Evaluation struct {
	NextDueDate     time.Time `json:"nextDueDate"`
	NextDueOdometer int       `json:"nextDueOdometer"`
	DaysUntil       int       `json:"daysUntil"`
	DistanceUntil   int       `json:"distanceUntil"`
	Status          Status    `json:"status"`
}

// Policy holds the thresholds that turn an ok interval into a warning.
type Policy struct {
	WarningDays     int
	WarningDistance int
}

// DefaultPolicy returns the 14 day / 1000 km thresholds.
func DefaultPolicy() Policy {
	return Policy{
		WarningDays:     DefaultWarningDays,
		WarningDistance: DefaultWarningDistance,
	}
}

// Evaluate projects iv forward and classifies it against currentOdometer and now.
func (p Policy) Evaluate(iv Interval, currentOdometer int, now time.Time) Evaluation {
	nextDate := AddMonths(iv.LastServiceDate, iv.IntervalMonths)
	nextOdo := iv.LastServiceOdometer + iv.IntervalDistance

	ev := Evaluation{
		NextDueDate:     nextDate,
		NextDueOdometer: nextOdo,
		DaysUntil:       DaysUntil(nextDate, now),
		DistanceUntil:   nextOdo - currentOdometer,
	}
	ev.Status = p.classify(ev.DaysUntil, ev.DistanceUntil)
	return ev
}

func (p Policy) classify(daysUntil, distanceUntil int) Status {
	switch {
	case daysUntil < 0 || distanceUntil < 0:
		return StatusOverdue
	case daysUntil < p.WarningDays || distanceUntil < p.WarningDistance:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Evaluate runs DefaultPolicy().Evaluate.
func Evaluate(iv Interval, currentOdometer int, now time.Time) Evaluation {
	return DefaultPolicy().Evaluate(iv, currentOdometer, now)
}
