package booking

import (
	"fmt"

	"medibook-server/internal/schedule"
)

const (
	minSlotDuration = 15
	maxSlotDuration = 120
)

// RuleInput is one weekly availability rule as submitted by a doctor.
type RuleInput struct {
	DayOfWeek    int    `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	SlotDuration int    `json:"slotDuration"`
	IsActive     *bool  `json:"isActive"`
}

// Active defaults to true when the flag is omitted.
func (r RuleInput) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// ValidateRules checks a full replacement batch. Any invalid rule rejects
// the whole batch; the error lists every offending field.
func ValidateRules(rules []RuleInput) error {
	var fields []FieldError

	add := func(i int, field, msg string) {
		fields = append(fields, FieldError{
			Field:   fmt.Sprintf("availability[%d].%s", i, field),
			Message: msg,
		})
	}

	for i, r := range rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			add(i, "dayOfWeek", "must be between 0 (Sunday) and 6 (Saturday)")
		}
		startOK, endOK := true, true
		if _, err := schedule.ToMinutes(r.StartTime); err != nil {
			add(i, "startTime", "must be in HH:MM format")
			startOK = false
		}
		if _, err := schedule.ToMinutes(r.EndTime); err != nil {
			add(i, "endTime", "must be in HH:MM format")
			endOK = false
		}
		if startOK && endOK && !schedule.IsValidRange(r.StartTime, r.EndTime) {
			add(i, "endTime", "must be after startTime")
		}
		if r.SlotDuration < minSlotDuration || r.SlotDuration > maxSlotDuration {
			add(i, "slotDuration", fmt.Sprintf("must be between %d and %d minutes", minSlotDuration, maxSlotDuration))
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
