// Package booking implements the appointment core: the weekly availability
// store, the slot conflict checker, and the appointment lifecycle manager.
// HTTP concerns stay in the handlers; this package speaks models and errors.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"medibook-server/internal/models"
	"medibook-server/internal/schedule"
)

// Options tunes behavior that is kept configurable for compatibility with
// older deployments.
type Options struct {
	// ConflictMode selects interval-overlap (default) or exact-start-time
	// conflict detection for slot listing and the booking pre-check.
	ConflictMode schedule.ConflictMode
	// StrictTransitions enforces the status transition table instead of
	// accepting any enum member.
	StrictTransitions bool
}

// Identity is the verified caller attached to a request by the auth
// middleware. The core trusts it without re-verifying credentials.
type Identity struct {
	ID   string
	Role models.Role
}

// Service is the booking core. All methods are stateless request-scoped
// operations; the compound unique index on appointments is the authoritative
// guard against the check-then-act booking race.
type Service struct {
	db   *gorm.DB
	opts Options
	now  func() time.Time
}

func NewService(db *gorm.DB, opts Options) *Service {
	if opts.ConflictMode == "" {
		opts.ConflictMode = schedule.ModeOverlap
	}
	return &Service{db: db, opts: opts, now: time.Now}
}

// ---------------------------------------------------------------------------
// Doctors
// ---------------------------------------------------------------------------

// DoctorByID loads a doctor profile by its ID.
func (s *Service) DoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).Preload("User").First(&doctor, "id = ?", doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return &doctor, nil
}

// DoctorByUserID resolves the doctor profile owned by a user account.
func (s *Service) DoctorByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("get doctor profile: %w", err)
	}
	return &doctor, nil
}

// ---------------------------------------------------------------------------
// Weekly availability store
// ---------------------------------------------------------------------------

// RulesForDoctor lists a doctor's weekly rules ordered by day and start time.
func (s *Service) RulesForDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	err := s.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week asc, start_time asc").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("list availability rules: %w", err)
	}
	return rules, nil
}

// ReplaceRules atomically swaps a doctor's whole weekly schedule. Every rule
// is validated up front; one bad rule rejects the batch so a reader can never
// observe a partially replaced schedule.
func (s *Service) ReplaceRules(ctx context.Context, doctorID string, inputs []RuleInput) ([]models.AvailabilityRule, error) {
	if err := ValidateRules(inputs); err != nil {
		return nil, err
	}

	rules := make([]models.AvailabilityRule, 0, len(inputs))
	for _, in := range inputs {
		rules = append(rules, models.AvailabilityRule{
			DoctorID:     doctorID,
			DayOfWeek:    in.DayOfWeek,
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
			SlotDuration: in.SlotDuration,
			IsActive:     in.Active(),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.AvailabilityRule{}).Error; err != nil {
			return fmt.Errorf("delete old rules: %w", err)
		}
		if len(rules) == 0 {
			return nil
		}
		if err := tx.Create(&rules).Error; err != nil {
			return fmt.Errorf("insert new rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replace availability: %w", err)
	}
	return rules, nil
}

// DayAvailability produces the bookable slots for a doctor on a given date,
// alongside the doctor it resolved. The configured return is false when the
// doctor has no active rule for that weekday; this is a signal, not an error.
func (s *Service) DayAvailability(ctx context.Context, doctorID string, date time.Time) (*models.Doctor, []schedule.Slot, bool, error) {
	doctor, err := s.DoctorByID(ctx, doctorID)
	if err != nil {
		return nil, nil, false, err
	}

	var rule models.AvailabilityRule
	err = s.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_active = ?", doctorID, int(date.Weekday()), true).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return doctor, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("get day rule: %w", err)
	}

	booked, err := s.activeAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, nil, false, err
	}

	bookings := make([]schedule.Booking, 0, len(booked))
	for _, a := range booked {
		bookings = append(bookings, schedule.Booking{StartTime: a.StartTime, EndTime: a.EndTime})
	}

	slots, err := schedule.GenerateSlots(schedule.Window{
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		SlotDuration: rule.SlotDuration,
	}, bookings, s.opts.ConflictMode)
	if err != nil {
		return nil, nil, false, fmt.Errorf("generate slots: %w", err)
	}
	return doctor, slots, true, nil
}

// ---------------------------------------------------------------------------
// Conflict checker
// ---------------------------------------------------------------------------

// HasConflict reports whether an active appointment already occupies the
// requested slot. This is a fast pre-check only; the unique index catches
// the race between two concurrent creates.
func (s *Service) HasConflict(ctx context.Context, doctorID string, date time.Time, startTime, endTime string) (bool, error) {
	if s.opts.ConflictMode == schedule.ModeExactStart || endTime == "" {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ? AND start_time = ?", doctorID, dateOnly(date), startTime).
			Where("status IN ?", models.ActiveStatuses).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("conflict check: %w", err)
		}
		return count > 0, nil
	}

	reqStart, err := schedule.ToMinutes(startTime)
	if err != nil {
		return false, fmt.Errorf("conflict check: %w", err)
	}
	reqEnd, err := schedule.ToMinutes(endTime)
	if err != nil {
		return false, fmt.Errorf("conflict check: %w", err)
	}

	existing, err := s.activeAppointments(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	for _, a := range existing {
		aStart, err := schedule.ToMinutes(a.StartTime)
		if err != nil {
			continue // unparsable rows cannot conflict
		}
		aEnd := aStart
		if e, err := schedule.ToMinutes(a.EndTime); err == nil {
			aEnd = e
		}
		if reqStart < aEnd && aStart < reqEnd {
			return true, nil
		}
		if aStart == reqStart {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) activeAppointments(ctx context.Context, doctorID string, date time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, dateOnly(date)).
		Where("status IN ?", models.ActiveStatuses).
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("list active appointments: %w", err)
	}
	return appts, nil
}

// ---------------------------------------------------------------------------
// Lifecycle: create
// ---------------------------------------------------------------------------

// CreateInput is a patient's booking request.
type CreateInput struct {
	DoctorID        string
	AppointmentDate time.Time
	StartTime       string
	EndTime         string
	Symptoms        string
	Notes           string
}

// Create books a new appointment for the calling patient. The consultation
// fee is snapshotted from the doctor's current fee and the status starts at
// scheduled.
func (s *Service) Create(ctx context.Context, patient Identity, in CreateInput) (*models.Appointment, error) {
	var fields []FieldError
	if _, err := schedule.ToMinutes(in.StartTime); err != nil {
		fields = append(fields, FieldError{Field: "startTime", Message: "must be in HH:MM format"})
	}
	if _, err := schedule.ToMinutes(in.EndTime); err != nil {
		fields = append(fields, FieldError{Field: "endTime", Message: "must be in HH:MM format"})
	}
	if len(fields) == 0 && !schedule.IsValidRange(in.StartTime, in.EndTime) {
		fields = append(fields, FieldError{Field: "endTime", Message: "must be after startTime"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	doctor, err := s.DoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	if slotInPast(in.AppointmentDate, in.StartTime, s.now()) {
		return nil, ErrPastDate
	}

	taken, err := s.HasConflict(ctx, in.DoctorID, in.AppointmentDate, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appt := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: dateOnly(in.AppointmentDate),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Status:          models.StatusScheduled,
		ConsultationFee: doctor.ConsultationFee,
		Symptoms:        in.Symptoms,
		Notes:           in.Notes,
	}
	appt.SyncSlotGuard()

	if err := s.db.WithContext(ctx).Create(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent booking.
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	err = s.db.WithContext(ctx).Model(doctor).
		UpdateColumn("total_appointments", gorm.Expr("total_appointments + ?", 1)).Error
	if err != nil {
		// The appointment is booked; a stale counter is not worth failing it.
		slog.Warn("appointment counter update failed", "doctorId", doctor.ID, "error", err)
	}

	return s.load(ctx, appt.ID)
}

// ---------------------------------------------------------------------------
// Lifecycle: read
// ---------------------------------------------------------------------------

// ListFilter narrows and pages an appointment listing.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// List returns the caller's appointments: patients see their own, doctors see
// their schedule, admins see everything.
func (s *Service) List(ctx context.Context, caller Identity, f ListFilter) ([]models.Appointment, int64, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := s.db.WithContext(ctx).Model(&models.Appointment{})
	switch caller.Role {
	case models.RolePatient:
		q = q.Where("patient_id = ?", caller.ID)
	case models.RoleDoctor:
		doctor, err := s.DoctorByUserID(ctx, caller.ID)
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
		// no restriction
	default:
		return nil, 0, ErrNotAuthorized
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	var appts []models.Appointment
	err := q.Preload("Patient").Preload("Doctor.User").
		Order("appointment_date desc, start_time desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appts, total, nil
}

// Get fetches one appointment; callers who are not a participant or an admin
// get ErrNotAuthorized, distinct from ErrAppointmentNotFound.
func (s *Service) Get(ctx context.Context, caller Identity, id string) (*models.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(caller, appt) {
		return nil, ErrNotAuthorized
	}
	return appt, nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor.User").
		First(&appt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &appt, nil
}

func (s *Service) canAccess(caller Identity, appt *models.Appointment) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return appt.PatientID == caller.ID
	case models.RoleDoctor:
		return appt.Doctor.UserID == caller.ID
	}
	return false
}

// ---------------------------------------------------------------------------
// Lifecycle: update
// ---------------------------------------------------------------------------

// Update applies a role-projected field update. Fields outside the caller's
// allow list are silently dropped. A status change goes through the
// transition policy and keeps the slot guard in sync.
func (s *Service) Update(ctx context.Context, caller Identity, id string, in UpdateInput) (*models.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(caller, appt) {
		return nil, ErrNotAuthorized
	}

	proj := in.Project(caller.Role)

	if proj.Status != nil && *proj.Status != appt.Status {
		if !models.IsValidStatus(*proj.Status) {
			return nil, ErrUnknownStatus
		}
		if !CanTransition(appt.Status, *proj.Status, s.opts.StrictTransitions) {
			return nil, ErrInvalidTransition
		}
		appt.Status = *proj.Status
		if appt.Status == models.StatusCancelled && appt.CancelledAt == nil {
			now := s.now()
			appt.CancelledAt = &now
			appt.CancelledBy = caller.Role
		}
		appt.SyncSlotGuard()
	}

	proj.apply(appt)

	if err := s.db.WithContext(ctx).Save(appt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Re-activating a cancelled/no-show appointment whose slot has
			// since been rebooked.
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appt, nil
}

// ---------------------------------------------------------------------------
// Lifecycle: cancel
// ---------------------------------------------------------------------------

// Cancel transitions the appointment to cancelled, stamps the cancellation
// metadata, and frees the slot. Cancelled and completed appointments reject
// the call.
func (s *Service) Cancel(ctx context.Context, caller Identity, id, reason string) (*models.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(caller, appt) {
		return nil, ErrNotAuthorized
	}

	if err := cancelBlocked(appt.Status); err != nil {
		return nil, err
	}

	stampCancellation(appt, caller.Role, reason, s.now())

	if err := s.db.WithContext(ctx).Save(appt).Error; err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	return appt, nil
}

// ---------------------------------------------------------------------------
// Doctor dashboard
// ---------------------------------------------------------------------------

// Dashboard aggregates a doctor's schedule overview.
type Dashboard struct {
	TodayAppointments    []models.Appointment               `json:"todayAppointments"`
	UpcomingAppointments []models.Appointment               `json:"upcomingAppointments"`
	MonthlyStatusCounts  map[models.AppointmentStatus]int64 `json:"monthlyStatusCounts"`
	TotalAppointments    int                                `json:"totalAppointments"`
	Rating               float64                            `json:"rating"`
}

// DoctorDashboard builds the dashboard for the doctor owned by userID.
func (s *Service) DoctorDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	doctor, err := s.DoctorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := dateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)

	var todays []models.Appointment
	err = s.db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ? AND appointment_date = ?", doctor.ID, today).
		Order("start_time asc").
		Find(&todays).Error
	if err != nil {
		return nil, fmt.Errorf("today's appointments: %w", err)
	}

	var upcoming []models.Appointment
	err = s.db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ?", doctor.ID, tomorrow, nextWeek).
		Where("status IN ?", []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}).
		Order("appointment_date asc, start_time asc").
		Find(&upcoming).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type statusCount struct {
		Status models.AppointmentStatus
		Count  int64
	}
	var counts []statusCount
	err = s.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, count(*) as count").
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ?", doctor.ID, monthStart, monthEnd).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}

	monthly := make(map[models.AppointmentStatus]int64, len(counts))
	for _, c := range counts {
		monthly[c.Status] = c.Count
	}

	return &Dashboard{
		TodayAppointments:    todays,
		UpcomingAppointments: upcoming,
		MonthlyStatusCounts:  monthly,
		TotalAppointments:    doctor.TotalAppointments,
		Rating:               doctor.Rating,
	}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// cancelBlocked reports why an appointment in status s rejects cancellation,
// or nil when cancelling is allowed.
func cancelBlocked(s models.AppointmentStatus) error {
	switch s {
	case models.StatusCancelled:
		return ErrAlreadyCancelled
	case models.StatusCompleted:
		return ErrCancelCompleted
	}
	return nil
}

// stampCancellation moves the appointment to cancelled, records who cancelled
// and when, and frees the slot guard so the slot can be rebooked.
func stampCancellation(appt *models.Appointment, by models.Role, reason string, at time.Time) {
	appt.Status = models.StatusCancelled
	appt.CancellationReason = reason
	appt.CancelledBy = by
	appt.CancelledAt = &at
	appt.SyncSlotGuard()
}

// slotInPast reports whether the slot at date plus the HH:MM start clock is
// not strictly in the future relative to now.
func slotInPast(date time.Time, clock string, now time.Time) bool {
	return !slotClock(date, clock).After(now)
}

// slotClock combines a calendar date with an HH:MM clock string. An
// unparsable clock falls back to midnight; validation happens before this.
func slotClock(date time.Time, clock string) time.Time {
	mins, err := schedule.ToMinutes(clock)
	if err != nil {
		mins = 0
	}
	return dateOnly(date).Add(time.Duration(mins) * time.Minute)
}
