package schedule

import "fmt"

// ConflictMode selects how an existing booking blocks a candidate slot.
type ConflictMode string

const (
	// ModeOverlap flags a slot when any booking's half-open interval
	// overlaps the candidate's. Default for new deployments.
	ModeOverlap ConflictMode = "overlap"
	// ModeExactStart flags a slot only when a booking starts at exactly the
	// candidate's start minute. Compatibility behavior: a booking with a
	// non-standard duration that spills into a later slot will not be
	// flagged in this mode.
	ModeExactStart ConflictMode = "exact"
)

// ParseConflictMode maps a config string to a ConflictMode, defaulting to
// ModeOverlap for anything unrecognized or empty.
func ParseConflictMode(s string) ConflictMode {
	if ConflictMode(s) == ModeExactStart {
		return ModeExactStart
	}
	return ModeOverlap
}

// Window is a doctor's open interval for one day.
type Window struct {
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	SlotDuration int    // minutes
}

// Booking is an existing active appointment's time range.
type Booking struct {
	StartTime string
	EndTime   string
}

// Slot is one bookable candidate.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// GenerateSlots enumerates candidate slots by stepping through the window in
// SlotDuration increments. A trailing interval that would overrun the window
// end is dropped, not clamped. Each candidate is marked unavailable when it
// collides with a booking under the given mode.
func GenerateSlots(w Window, booked []Booking, mode ConflictMode) ([]Slot, error) {
	start, err := ToMinutes(w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("window start: %w", err)
	}
	end, err := ToMinutes(w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("window end: %w", err)
	}
	if end <= start {
		return nil, fmt.Errorf("window end %s is not after start %s", w.EndTime, w.StartTime)
	}
	if w.SlotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", w.SlotDuration)
	}

	busy, err := parseBookings(booked, w.SlotDuration)
	if err != nil {
		return nil, err
	}

	var slots []Slot
	for cur := start; cur+w.SlotDuration <= end; cur += w.SlotDuration {
		slotEnd := cur + w.SlotDuration
		slots = append(slots, Slot{
			StartTime: FromMinutes(cur),
			EndTime:   FromMinutes(slotEnd),
			Available: !blocked(cur, slotEnd, busy, mode),
		})
	}
	return slots, nil
}

type interval struct {
	start, end int
}

func parseBookings(booked []Booking, fallbackDuration int) ([]interval, error) {
	out := make([]interval, 0, len(booked))
	for _, b := range booked {
		s, err := ToMinutes(b.StartTime)
		if err != nil {
			return nil, fmt.Errorf("booking start: %w", err)
		}
		e := s + fallbackDuration
		if b.EndTime != "" {
			e, err = ToMinutes(b.EndTime)
			if err != nil {
				return nil, fmt.Errorf("booking end: %w", err)
			}
		}
		out = append(out, interval{start: s, end: e})
	}
	return out, nil
}

func blocked(start, end int, busy []interval, mode ConflictMode) bool {
	for _, b := range busy {
		if mode == ModeExactStart {
			if b.start == start {
				return true
			}
			continue
		}
		// Half-open intervals: [start,end) overlaps [b.start,b.end).
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}
