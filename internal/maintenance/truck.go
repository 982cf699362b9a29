package maintenance

import (
	"fmt"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// serviceAliases maps a service type written on a record to the schedule
// name it also resets.
var serviceAliases = map[string]string{
	"oil change": "ganti oli",
	"regular":    "service rutin",
}

// SnapshotFromTruck builds the evaluation snapshot from a stored truck.
func SnapshotFromTruck(t models.Truck) (Snapshot, error) {
	general, err := toInterval(t.LastServiceDate, t.LastServiceOdometer, t.ServiceIntervalMonths, t.ServiceIntervalKm)
	if err != nil {
		return Snapshot{}, fmt.Errorf("truck %s: %w", t.ID, err)
	}

	s := Snapshot{
		CurrentOdometer: t.CurrentOdometer,
		General:         general,
		Items:           make([]NamedInterval, 0, len(t.Schedules)),
	}
	for _, sch := range t.Schedules {
		iv, err := toInterval(sch.LastServiceDate, sch.LastServiceOdometer, sch.IntervalMonths, sch.IntervalKm)
		if err != nil {
			return Snapshot{}, fmt.Errorf("truck %s schedule %q: %w", t.ID, sch.ServiceName, err)
		}
		s.Items = append(s.Items, NamedInterval{Name: sch.ServiceName, Interval: iv})
	}
	return s, nil
}

func toInterval(date string, odometer, months, km int) (Interval, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		LastServiceDate:     d,
		LastServiceOdometer: odometer,
		IntervalMonths:      months,
		IntervalDistance:    km,
	}, nil
}

// MatchesSchedule reports whether a service type performed on a record
// resets the named schedule.
func MatchesSchedule(serviceType, scheduleName string) bool {
	st := strings.ToLower(strings.TrimSpace(serviceType))
	name := strings.ToLower(strings.TrimSpace(scheduleName))
	if st == name {
		return true
	}
	alias, ok := serviceAliases[st]
	return ok && alias == name
}

// ScheduleNamesReset returns the normalized (trimmed, lower-case) schedule
// names restarted by a record carrying serviceTypes. A schedule is reset when
// MatchesSchedule holds for one of the types, which is the case exactly when
// its normalized name is in the returned list.
func ScheduleNamesReset(serviceTypes []string) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, st := range serviceTypes {
		st = strings.ToLower(strings.TrimSpace(st))
		add(st)
		add(serviceAliases[st])
	}
	return names
}

// ResetSchedules returns the names of the schedules a record carrying
// serviceTypes restarts, in stored order.
func ResetSchedules(schedules []models.ServiceSchedule, serviceTypes []string) []string {
	var reset []string
	for _, sch := range schedules {
		for _, st := range serviceTypes {
			if MatchesSchedule(st, sch.ServiceName) {
				reset = append(reset, sch.ServiceName)
				break
			}
		}
	}
	return reset
}

// ApplyServiceRecord moves the truck's service anchors forward after rec was
// performed: the general interval restarts at the record, the odometer never
// goes backwards, and every schedule matched by one of the record's service
// types restarts too. It returns the names of the schedules it reset.
func ApplyServiceRecord(t *models.Truck, rec models.ServiceRecord) []string {
	t.LastServiceDate = rec.ServiceDate
	t.LastServiceOdometer = rec.Odometer
	if rec.Odometer > t.CurrentOdometer {
		t.CurrentOdometer = rec.Odometer
	}

	for i := range t.Schedules {
		sch := &t.Schedules[i]
		for _, st := range rec.ServiceTypes {
			if MatchesSchedule(st, sch.ServiceName) {
				sch.LastServiceDate = rec.ServiceDate
				sch.LastServiceOdometer = rec.Odometer
				break
			}
		}
	}
	return ResetSchedules(t.Schedules, rec.ServiceTypes)
}
