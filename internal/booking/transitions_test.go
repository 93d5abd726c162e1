package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibook-server/internal/models"
)

func TestPermissiveModeAcceptsAnyEnumMember(t *testing.T) {
	// Historical behavior: even completed -> scheduled passes.
	assert.True(t, CanTransition(models.StatusCompleted, models.StatusScheduled, false))
	assert.True(t, CanTransition(models.StatusCancelled, models.StatusConfirmed, false))
}

func TestPermissiveModeRejectsUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(models.StatusScheduled, models.AppointmentStatus("bogus"), false))
}

func TestStrictModeTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.AppointmentStatus
		ok       bool
	}{
		{models.StatusScheduled, models.StatusConfirmed, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusNoShow, true},
		{models.StatusScheduled, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusNoShow, true},
		{models.StatusConfirmed, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusScheduled, false},
		{models.StatusCancelled, models.StatusScheduled, false},
		{models.StatusNoShow, models.StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to, true), "%s -> %s", tc.from, tc.to)
	}
}

func TestStrictModeSelfTransitionAllowed(t *testing.T) {
	assert.True(t, CanTransition(models.StatusCompleted, models.StatusCompleted, true))
}

func TestTerminalStatusPredicate(t *testing.T) {
	assert.True(t, models.IsTerminalStatus(models.StatusCompleted))
	assert.True(t, models.IsTerminalStatus(models.StatusCancelled))
	assert.True(t, models.IsTerminalStatus(models.StatusNoShow))
	assert.False(t, models.IsTerminalStatus(models.StatusScheduled))
	assert.False(t, models.IsTerminalStatus(models.StatusConfirmed))
}

func TestActiveStatusPredicate(t *testing.T) {
	assert.True(t, models.IsActiveStatus(models.StatusScheduled))
	assert.True(t, models.IsActiveStatus(models.StatusConfirmed))
	assert.True(t, models.IsActiveStatus(models.StatusCompleted))
	assert.False(t, models.IsActiveStatus(models.StatusCancelled))
	assert.False(t, models.IsActiveStatus(models.StatusNoShow))
}

func TestSlotGuardFollowsStatus(t *testing.T) {
	appt := models.Appointment{Status: models.StatusScheduled}
	appt.SyncSlotGuard()
	assert.NotNil(t, appt.SlotGuard)

	appt.Status = models.StatusCancelled
	appt.SyncSlotGuard()
	assert.Nil(t, appt.SlotGuard)

	appt.Status = models.StatusNoShow
	appt.SyncSlotGuard()
	assert.Nil(t, appt.SlotGuard)
}
