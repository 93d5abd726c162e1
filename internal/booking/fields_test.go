package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibook-server/internal/models"
)

func fullUpdate() UpdateInput {
	status := models.StatusCompleted
	prescription := "rest and fluids"
	diagnosis := "seasonal flu"
	followUp := true
	notes := "doctor notes"
	symptoms := "fever"
	return UpdateInput{
		Status:           &status,
		Prescription:     &prescription,
		Diagnosis:        &diagnosis,
		FollowUpRequired: &followUp,
		Notes:            &notes,
		Symptoms:         &symptoms,
	}
}

func TestProjectPatientKeepsOnlySymptomsAndNotes(t *testing.T) {
	proj := fullUpdate().Project(models.RolePatient)

	assert.Nil(t, proj.Status, "patient status field must be silently ignored")
	assert.Nil(t, proj.Prescription)
	assert.Nil(t, proj.Diagnosis)
	assert.Nil(t, proj.FollowUpRequired)
	assert.Nil(t, proj.FollowUpDate)
	assert.NotNil(t, proj.Symptoms)
	assert.NotNil(t, proj.Notes)
}

func TestProjectDoctorDropsSymptoms(t *testing.T) {
	proj := fullUpdate().Project(models.RoleDoctor)

	assert.NotNil(t, proj.Status)
	assert.NotNil(t, proj.Prescription)
	assert.NotNil(t, proj.Diagnosis)
	assert.NotNil(t, proj.FollowUpRequired)
	assert.NotNil(t, proj.Notes)
	assert.Nil(t, proj.Symptoms)
}

func TestProjectAdminMatchesDoctor(t *testing.T) {
	in := fullUpdate()
	assert.Equal(t, in.Project(models.RoleDoctor), in.Project(models.RoleAdmin))
}

func TestProjectUnknownRoleDropsEverything(t *testing.T) {
	proj := fullUpdate().Project(models.Role("intruder"))
	assert.Equal(t, UpdateInput{}, proj)
}

func TestApplyWritesProjectedFields(t *testing.T) {
	appt := models.Appointment{Symptoms: "old", Notes: "old"}

	proj := fullUpdate().Project(models.RolePatient)
	proj.apply(&appt)

	assert.Equal(t, "fever", appt.Symptoms)
	assert.Equal(t, "doctor notes", appt.Notes)
	assert.Empty(t, appt.Prescription)
	assert.Empty(t, appt.Diagnosis)
}
