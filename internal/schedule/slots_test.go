package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotsFullDay(t *testing.T) {
	slots, err := GenerateSlots(Window{StartTime: "09:00", EndTime: "17:00", SlotDuration: 30}, nil, ModeOverlap)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, Slot{StartTime: "09:00", EndTime: "09:30", Available: true}, slots[0])
	assert.Equal(t, Slot{StartTime: "16:30", EndTime: "17:00", Available: true}, slots[15])
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlotsMarksBooked(t *testing.T) {
	booked := []Booking{{StartTime: "10:00", EndTime: "10:30"}}
	slots, err := GenerateSlots(Window{StartTime: "09:00", EndTime: "17:00", SlotDuration: 30}, booked, ModeOverlap)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	for _, s := range slots {
		if s.StartTime == "10:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot %s", s.StartTime)
		}
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	slots, err := GenerateSlots(Window{StartTime: "09:00", EndTime: "09:50", SlotDuration: 30}, nil, ModeOverlap)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
}

// A 45-minute booking starting at 10:00 spills into the 10:30 candidate.
// Overlap mode flags both candidates; exact-start mode only the first.
func TestGenerateSlotsModeDivergence(t *testing.T) {
	booked := []Booking{{StartTime: "10:00", EndTime: "10:45"}}
	window := Window{StartTime: "10:00", EndTime: "12:00", SlotDuration: 30}

	overlap, err := GenerateSlots(window, booked, ModeOverlap)
	require.NoError(t, err)
	assert.False(t, overlap[0].Available) // 10:00
	assert.False(t, overlap[1].Available) // 10:30
	assert.True(t, overlap[2].Available)  // 11:00

	exact, err := GenerateSlots(window, booked, ModeExactStart)
	require.NoError(t, err)
	assert.False(t, exact[0].Available)
	assert.True(t, exact[1].Available) // known gap of the compat mode
	assert.True(t, exact[2].Available)
}

func TestGenerateSlotsBookingWithoutEndUsesSlotDuration(t *testing.T) {
	booked := []Booking{{StartTime: "09:00"}}
	slots, err := GenerateSlots(Window{StartTime: "09:00", EndTime: "10:00", SlotDuration: 30}, booked, ModeOverlap)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGenerateSlotsRejectsBadWindow(t *testing.T) {
	_, err := GenerateSlots(Window{StartTime: "17:00", EndTime: "09:00", SlotDuration: 30}, nil, ModeOverlap)
	assert.Error(t, err)

	_, err = GenerateSlots(Window{StartTime: "zz", EndTime: "09:00", SlotDuration: 30}, nil, ModeOverlap)
	assert.ErrorIs(t, err, ErrBadClock)

	_, err = GenerateSlots(Window{StartTime: "09:00", EndTime: "17:00", SlotDuration: 0}, nil, ModeOverlap)
	assert.Error(t, err)
}

func TestParseConflictMode(t *testing.T) {
	assert.Equal(t, ModeOverlap, ParseConflictMode(""))
	assert.Equal(t, ModeOverlap, ParseConflictMode("overlap"))
	assert.Equal(t, ModeOverlap, ParseConflictMode("anything-else"))
	assert.Equal(t, ModeExactStart, ParseConflictMode("exact"))
}
