package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAuthorized       = errors.New("not authorized for this appointment")
	ErrPastDate            = errors.New("appointment date must be in the future")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrCancelCompleted     = errors.New("cannot cancel a completed appointment")
	ErrUnknownStatus       = errors.New("unknown appointment status")
	ErrInvalidTransition   = errors.New("status transition not permitted")
)

// FieldError pinpoints a single invalid field in a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field errors for a rejected
// request. The whole batch is rejected; no partial effect occurs.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
