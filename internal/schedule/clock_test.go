package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"9:30", 570}, // single-digit hour is accepted
		{"12:00", 720},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.clock)
		require.NoError(t, err, tc.clock)
		assert.Equal(t, tc.want, got, tc.clock)
	}
}

func TestToMinutesRejectsBadInput(t *testing.T) {
	bad := []string{"", "24:00", "12:60", "12", "12:5", "ab:cd", "12:00:00", "-1:00", " 12:00"}
	for _, clock := range bad {
		_, err := ToMinutes(clock)
		assert.ErrorIs(t, err, ErrBadClock, "input %q", clock)
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for n := 0; n < 1440; n++ {
		got, err := ToMinutes(FromMinutes(n))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestFromMinutesZeroPadding(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "09:05", FromMinutes(545))
	assert.Equal(t, "23:59", FromMinutes(1439))
}

func TestIsValidRange(t *testing.T) {
	assert.True(t, IsValidRange("09:00", "17:00"))
	assert.True(t, IsValidRange("09:00", "09:01"))
	assert.False(t, IsValidRange("09:00", "09:00"))
	assert.False(t, IsValidRange("17:00", "09:00"))
	assert.False(t, IsValidRange("bogus", "09:00"))
	assert.False(t, IsValidRange("09:00", "bogus"))
}
