package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRulesAcceptsGoodBatch(t *testing.T) {
	rules := []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 30},
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00", SlotDuration: 15},
		{DayOfWeek: 6, StartTime: "08:30", EndTime: "12:00", SlotDuration: 120},
	}
	assert.NoError(t, ValidateRules(rules))
}

func TestValidateRulesRejectsWholeBatch(t *testing.T) {
	rules := []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 30}, // fine
		{DayOfWeek: 3, StartTime: "17:00", EndTime: "09:00", SlotDuration: 30}, // inverted
	}
	err := ValidateRules(rules)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "availability[1].endTime", ve.Fields[0].Field)
}

func TestValidateRulesFieldErrors(t *testing.T) {
	rules := []RuleInput{
		{DayOfWeek: 7, StartTime: "25:00", EndTime: "9:99", SlotDuration: 10},
	}
	err := ValidateRules(rules)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)

	got := make(map[string]bool, len(ve.Fields))
	for _, f := range ve.Fields {
		got[f.Field] = true
	}
	assert.True(t, got["availability[0].dayOfWeek"])
	assert.True(t, got["availability[0].startTime"])
	assert.True(t, got["availability[0].endTime"])
	assert.True(t, got["availability[0].slotDuration"])
}

func TestValidateRulesDurationBounds(t *testing.T) {
	tooShort := []RuleInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 14}}
	assert.Error(t, ValidateRules(tooShort))

	tooLong := []RuleInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 121}}
	assert.Error(t, ValidateRules(tooLong))

	assert.NoError(t, ValidateRules([]RuleInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 15}}))
	assert.NoError(t, ValidateRules([]RuleInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 120}}))
}

func TestRuleInputActiveDefaultsTrue(t *testing.T) {
	assert.True(t, RuleInput{}.Active())

	f := false
	assert.False(t, RuleInput{IsActive: &f}.Active())
}
