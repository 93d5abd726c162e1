package booking

import (
	"time"

	"medibook-server/internal/models"
)

// UpdateInput carries every field an update request may set. Nil pointers
// mean "not provided". Which fields actually apply depends on the caller's
// role; disallowed fields are silently dropped, not rejected.
type UpdateInput struct {
	Status           *models.AppointmentStatus `json:"status"`
	Prescription     *string                   `json:"prescription"`
	Diagnosis        *string                   `json:"diagnosis"`
	FollowUpRequired *bool                     `json:"followUpRequired"`
	FollowUpDate     *time.Time                `json:"followUpDate"`
	Notes            *string                   `json:"notes"`
	Symptoms         *string                   `json:"symptoms"`
}

// roleFieldAllowList maps each role to the appointment fields it may write.
var roleFieldAllowList = map[models.Role]map[string]bool{
	models.RoleDoctor: {
		"status":           true,
		"prescription":     true,
		"diagnosis":        true,
		"followUpRequired": true,
		"followUpDate":     true,
		"notes":            true,
	},
	models.RoleAdmin: {
		"status":           true,
		"prescription":     true,
		"diagnosis":        true,
		"followUpRequired": true,
		"followUpDate":     true,
		"notes":            true,
	},
	models.RolePatient: {
		"symptoms": true,
		"notes":    true,
	},
}

// Project returns a copy of in with every field outside the role's allow
// list cleared.
func (in UpdateInput) Project(role models.Role) UpdateInput {
	allowed := roleFieldAllowList[role]
	out := UpdateInput{}
	if allowed["status"] {
		out.Status = in.Status
	}
	if allowed["prescription"] {
		out.Prescription = in.Prescription
	}
	if allowed["diagnosis"] {
		out.Diagnosis = in.Diagnosis
	}
	if allowed["followUpRequired"] {
		out.FollowUpRequired = in.FollowUpRequired
	}
	if allowed["followUpDate"] {
		out.FollowUpDate = in.FollowUpDate
	}
	if allowed["notes"] {
		out.Notes = in.Notes
	}
	if allowed["symptoms"] {
		out.Symptoms = in.Symptoms
	}
	return out
}

// apply writes the projected fields onto the appointment. Status is handled
// separately by the caller because it drives transition checks and the slot
// guard.
func (in UpdateInput) apply(appt *models.Appointment) {
	if in.Prescription != nil {
		appt.Prescription = *in.Prescription
	}
	if in.Diagnosis != nil {
		appt.Diagnosis = *in.Diagnosis
	}
	if in.FollowUpRequired != nil {
		appt.FollowUpRequired = *in.FollowUpRequired
	}
	if in.FollowUpDate != nil {
		appt.FollowUpDate = in.FollowUpDate
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	if in.Symptoms != nil {
		appt.Symptoms = *in.Symptoms
	}
}
