package booking

import "medibook-server/internal/models"

// strictNext is the transition table enforced when strict mode is on.
// Terminal states are handled by IsTerminalStatus and carry no entry here.
var strictNext = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled: {
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	},
	models.StatusConfirmed: {
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	},
}

// CanTransition reports whether moving from one status to another is
// permitted. In permissive mode (the historical behavior) any enum member is
// accepted regardless of the current status, which allows transitions like
// completed back to scheduled; strict mode enforces the table above.
func CanTransition(from, to models.AppointmentStatus, strict bool) bool {
	if !models.IsValidStatus(to) {
		return false
	}
	if !strict {
		return true
	}
	if from == to {
		return true
	}
	if models.IsTerminalStatus(from) {
		return false
	}
	for _, next := range strictNext[from] {
		if next == to {
			return true
		}
	}
	return false
}
