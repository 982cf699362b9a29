package maintenance

import (
	"encoding/json"
	"fmt"
)

// Status is the urgency tier of a maintenance interval. Values are ordered so
// that a larger value is always more urgent.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusOverdue
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusOverdue:
		return "overdue"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus converts "ok", "warning" or "overdue" into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "ok":
		return StatusOK, nil
	case "warning":
		return StatusWarning, nil
	case "overdue":
		return StatusOverdue, nil
	default:
		return StatusOK, fmt.Errorf("unknown status %q", s)
	}
}

// MarshalJSON encodes the status as its text form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the text form produced by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Worst returns the more urgent of two statuses.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
