package maintenance

import (
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// CostRange is an estimated min/max cost in IDR.
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (c CostRange) add(o CostRange) CostRange {
	return CostRange{Min: c.Min + o.Min, Max: c.Max + o.Max}
}

const (
	costOilChange      = "Oil Change"
	costBrakeSystem    = "Brake System"
	costTireChange     = "Tire Change"
	costRegularService = "Regular Service"
	costGeneralCheckup = "General Checkup"
)

var costTable = map[string]map[models.TruckSize]CostRange{
	costOilChange:      {models.TruckSmall: {600000, 900000}, models.TruckBig: {1500000, 2200000}},
	costBrakeSystem:    {models.TruckSmall: {500000, 1200000}, models.TruckBig: {1200000, 2500000}},
	costTireChange:     {models.TruckSmall: {1500000, 4000000}, models.TruckBig: {3000000, 8000000}},
	costRegularService: {models.TruckSmall: {1000000, 2000000}, models.TruckBig: {2500000, 4500000}},
	costGeneralCheckup: {models.TruckSmall: {300000, 800000}, models.TruckBig: {500000, 1500000}},
}

// costCategory picks the cost table row for a due label by keyword. Labels
// may be English or Indonesian and may carry a "(...)" suffix.
func costCategory(label string) string {
	name := strings.ToLower(strings.TrimSpace(strings.Split(label, "(")[0]))
	switch {
	case strings.Contains(name, "oli") || strings.Contains(name, "oil"):
		return costOilChange
	case strings.Contains(name, "rem") || strings.Contains(name, "brake"):
		return costBrakeSystem
	case strings.Contains(name, "ban") || strings.Contains(name, "tire"):
		return costTireChange
	case strings.Contains(name, "rutin") || strings.Contains(name, "regular"):
		return costRegularService
	default:
		return costGeneralCheckup
	}
}

// EstimateCost sums the expected cost of every due item for a truck of the
// given size. With nothing due it returns the general checkup range.
func EstimateCost(size models.TruckSize, itemsDue []string) CostRange {
	if !models.IsValidTruckSize(size) {
		size = models.TruckSmall
	}
	if len(itemsDue) == 0 {
		return costTable[costGeneralCheckup][size]
	}

	var total CostRange
	for _, item := range itemsDue {
		total = total.add(costTable[costCategory(item)][size])
	}
	return total
}
