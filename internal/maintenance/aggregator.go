package maintenance

import (
	"math"
	"time"
)

const (
	GeneralOverdueLabel = "General Service (Overdue)"
	GeneralDueSoonLabel = "General Service (Due Soon)"
)

// maxDate is the latest instant a time.Time can hold.
var maxDate = time.Unix(1<<63-62135596801, 999999999).UTC()

// NamedInterval is a per-item schedule such as "Oil Change" or "Tire Change".
type NamedInterval struct {
	Name     string
	Interval Interval
}

// Snapshot is the read-only view of a truck used for evaluation. General is
// mandatory; Items may be empty.
type Snapshot struct {
	CurrentOdometer int
	General         Interval
	Items           []NamedInterval
}

// Aggregate folds every interval of one truck into a single worst-case view.
type Aggregate struct {
	Status          Status    `json:"status"`
	ItemsDue        []string  `json:"itemsDue"`
	NearestDistance int       `json:"nearestDistance"`
	NearestDate     time.Time `json:"nearestDate"`
}

// NeedsAttention reports whether the truck belongs on the monitoring board:
// something is not ok, or the nearest due date falls in the month of now.
func (a Aggregate) NeedsAttention(now time.Time) bool {
	return a.Status != StatusOK || SameMonth(now, a.NearestDate)
}

// Aggregate evaluates the general interval and then every item in stored
// order. Status is the worst individual status; the nearest values are the
// minima over all intervals regardless of their status.
func (p Policy) Aggregate(s Snapshot, now time.Time) Aggregate {
	agg := Aggregate{
		Status:          StatusOK,
		ItemsDue:        []string{},
		NearestDistance: math.MaxInt,
		NearestDate:     maxDate,
	}

	general := p.Evaluate(s.General, s.CurrentOdometer, now)
	switch general.Status {
	case StatusOverdue:
		agg.ItemsDue = append(agg.ItemsDue, GeneralOverdueLabel)
	case StatusWarning:
		agg.ItemsDue = append(agg.ItemsDue, GeneralDueSoonLabel)
	}
	agg.fold(general)

	for _, item := range s.Items {
		ev := p.Evaluate(item.Interval, s.CurrentOdometer, now)
		if ev.Status != StatusOK {
			agg.ItemsDue = append(agg.ItemsDue, item.Name)
		}
		agg.fold(ev)
	}
	return agg
}

func (a *Aggregate) fold(ev Evaluation) {
	a.Status = Worst(a.Status, ev.Status)
	if ev.DistanceUntil < a.NearestDistance {
		a.NearestDistance = ev.DistanceUntil
	}
	if ev.NextDueDate.Before(a.NearestDate) {
		a.NearestDate = ev.NextDueDate
	}
}

// AggregateSnapshot runs DefaultPolicy().Aggregate.
func AggregateSnapshot(s Snapshot, now time.Time) Aggregate {
	return DefaultPolicy().Aggregate(s, now)
}

// ItemEvaluation is one named interval's evaluation.
type ItemEvaluation struct {
	Name string `json:"name"`
	Evaluation
}

// DetailedStatus is the aggregate together with every interval it was built from.
type DetailedStatus struct {
	Aggregate
	General Evaluation       `json:"general"`
	Items   []ItemEvaluation `json:"items"`
}

// Detail evaluates every interval of s and returns them with their aggregate.
func (p Policy) Detail(s Snapshot, now time.Time) DetailedStatus {
	d := DetailedStatus{
		Aggregate: p.Aggregate(s, now),
		General:   p.Evaluate(s.General, s.CurrentOdometer, now),
		Items:     make([]ItemEvaluation, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		d.Items = append(d.Items, ItemEvaluation{
			Name:       item.Name,
			Evaluation: p.Evaluate(item.Interval, s.CurrentOdometer, now),
		})
	}
	return d
}
