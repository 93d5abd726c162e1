package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// ActiveStatuses are the statuses that count as occupying a slot.
var ActiveStatuses = []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCompleted}

// IsValidStatus reports whether s is a member of the status enum.
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActiveStatus reports whether an appointment in status s still occupies
// its slot (i.e. is neither cancelled nor a no-show).
func IsActiveStatus(s AppointmentStatus) bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsTerminalStatus reports whether s permits no further transitions.
func IsTerminalStatus(s AppointmentStatus) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Appointment represents a booked consultation. PatientID and DoctorID are
// immutable after creation; an appointment is never deleted, cancellation is
// a status.
//
// The unique index over (doctor_id, appointment_date, start_time, slot_guard)
// is the authoritative guard against double booking. SlotGuard is 1 while the
// appointment is active and NULL once cancelled or marked no-show; MySQL
// excludes NULL rows from unique enforcement, so a freed slot can be rebooked.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index;uniqueIndex:uniq_doctor_slot,priority:1" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"type:date;uniqueIndex:uniq_doctor_slot,priority:2" json:"appointmentDate"`
	StartTime       string            `gorm:"size:5;not null;uniqueIndex:uniq_doctor_slot,priority:3" json:"startTime"`
	EndTime         string            `gorm:"size:5;not null" json:"endTime"`
	SlotGuard       *uint8            `gorm:"uniqueIndex:uniq_doctor_slot,priority:4" json:"-"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	ConsultationFee float64           `json:"consultationFee"` // snapshot of the doctor's fee at booking time

	// Clinical fields, role-gated on write
	Symptoms         string     `gorm:"size:1000" json:"symptoms,omitempty"`
	Notes            string     `gorm:"size:500" json:"notes,omitempty"`
	Prescription     string     `gorm:"size:2000" json:"prescription,omitempty"`
	Diagnosis        string     `gorm:"size:1000" json:"diagnosis,omitempty"`
	FollowUpRequired bool       `gorm:"default:false" json:"followUpRequired"`
	FollowUpDate     *time.Time `json:"followUpDate,omitempty"`

	// Cancellation metadata
	CancellationReason string     `gorm:"size:500" json:"cancellationReason,omitempty"`
	CancelledBy        Role       `gorm:"size:20" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	// Relations
	Patient User   `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// SyncSlotGuard aligns SlotGuard with the current status. Must be called
// whenever Status changes before the row is saved.
func (a *Appointment) SyncSlotGuard() {
	if IsActiveStatus(a.Status) {
		one := uint8(1)
		a.SlotGuard = &one
	} else {
		a.SlotGuard = nil
	}
}
