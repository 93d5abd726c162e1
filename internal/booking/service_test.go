package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medibook-server/internal/models"
)

func TestCancelBlockedByStatus(t *testing.T) {
	assert.ErrorIs(t, cancelBlocked(models.StatusCancelled), ErrAlreadyCancelled)
	assert.ErrorIs(t, cancelBlocked(models.StatusCompleted), ErrCancelCompleted)

	assert.NoError(t, cancelBlocked(models.StatusScheduled))
	assert.NoError(t, cancelBlocked(models.StatusConfirmed))
	assert.NoError(t, cancelBlocked(models.StatusNoShow))
}

func TestStampCancellationRecordsMetadataAndFreesSlot(t *testing.T) {
	appt := models.Appointment{Status: models.StatusScheduled}
	appt.SyncSlotGuard()
	assert.NotNil(t, appt.SlotGuard)

	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	stampCancellation(&appt, models.RolePatient, "feeling better", at)

	assert.Equal(t, models.StatusCancelled, appt.Status)
	assert.Equal(t, "feeling better", appt.CancellationReason)
	assert.Equal(t, models.RolePatient, appt.CancelledBy)
	if assert.NotNil(t, appt.CancelledAt) {
		assert.Equal(t, at, *appt.CancelledAt)
	}
	assert.Nil(t, appt.SlotGuard)
}

func TestSlotInPastCombinesDateAndStartClock(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.True(t, slotInPast(today.AddDate(0, 0, -1), "09:00", now))
	assert.False(t, slotInPast(today.AddDate(0, 0, 1), "09:00", now))

	// A later slot on the same day is bookable; an earlier one is not.
	assert.False(t, slotInPast(today, "14:00", now))
	assert.True(t, slotInPast(today, "09:00", now))

	// Exactly now is not strictly in the future.
	assert.True(t, slotInPast(today, "12:00", now))
}
