package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPatientTestDB(t *testing.T) *gorm.DB {
	return setupTestDB(t, "patient", &Medic{}, &Patient{}, &Treatment{})
}

func TestPatientModel_Create(t *testing.T) {
	db := setupPatientTestDB(t)

	patient := Patient{
		FullName:     "John Doe",
		DateOfBirth:  mustDate(t, "1990-04-12"),
		PolicyNumber: 482913,
		SocialStatus: "student",
	}

	err := db.Create(&patient).Error
	assert.NoError(t, err)
	assert.NotZero(t, patient.ID)
}

func TestPatientModel_Read(t *testing.T) {
	db := setupPatientTestDB(t)

	patient := Patient{
		FullName:      "Jane Doe",
		DateOfBirth:   mustDate(t, "1985-12-31"),
		PolicyNumber:  100200,
		SocialStatus:  "pensioner",
		SearchPayload: []byte(`{"ward":"B"}`),
	}
	require.NoError(t, db.Create(&patient).Error)

	var found Patient
	err := db.First(&found, patient.ID).Error
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.FullName)
	assert.Equal(t, "1985-12-31", FormatDate(found.DateOfBirth))
	assert.Equal(t, int64(100200), found.PolicyNumber)
	assert.JSONEq(t, `{"ward":"B"}`, string(found.SearchPayload))
	assert.Nil(t, found.MedicID)
}

func TestPatientModel_UniquePolicyNumber(t *testing.T) {
	db := setupPatientTestDB(t)

	first := Patient{FullName: "A", DateOfBirth: mustDate(t, "2000-01-01"), PolicyNumber: 555555, SocialStatus: "child"}
	require.NoError(t, db.Create(&first).Error)

	second := Patient{FullName: "B", DateOfBirth: mustDate(t, "2000-01-01"), PolicyNumber: 555555, SocialStatus: "child"}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPatientModel_DeleteCascadesToTreatments(t *testing.T) {
	db := setupPatientTestDB(t)

	medic := Medic{FullName: "Dr. X", Speciality: "Urologist", ExpYears: 3}
	require.NoError(t, db.Create(&medic).Error)
	patient := Patient{FullName: "P", DateOfBirth: mustDate(t, "2000-01-01"), PolicyNumber: 1, SocialStatus: "child"}
	require.NoError(t, db.Create(&patient).Error)
	treatment := Treatment{
		Diagnosis: "flu", CurrentState: "moderate",
		DateStart: mustDate(t, "2024-01-01"), DateEnd: mustDate(t, "2024-01-10"),
		PatientID: patient.ID, MedicID: medic.ID,
	}
	require.NoError(t, db.Create(&treatment).Error)

	require.NoError(t, db.Delete(&patient).Error)

	var count int64
	require.NoError(t, db.Model(&Treatment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPatientRequest_Apply(t *testing.T) {
	medicID := uint(9)
	p := Patient{ID: 4, MedicID: &medicID, SearchPayload: []byte(`{"old":true}`)}

	req := PatientRequest{
		FullName:     "New Name",
		DateOfBirth:  "1970-07-07",
		PolicyNumber: 777777,
		SocialStatus: "invalid",
	}
	require.NoError(t, req.Apply(&p))

	assert.Equal(t, uint(4), p.ID)
	assert.Equal(t, "New Name", p.FullName)
	assert.Equal(t, "1970-07-07", FormatDate(p.DateOfBirth))
	assert.Equal(t, int64(777777), p.PolicyNumber)
	assert.Equal(t, "invalid", p.SocialStatus)
	assert.Nil(t, p.SearchPayload, "full replace clears the payload")
	assert.Equal(t, &medicID, p.MedicID, "assigned medic is not client owned")

	req.SearchPayload = json.RawMessage(`null`)
	require.NoError(t, req.Apply(&p))
	assert.Nil(t, p.SearchPayload)

	req.DateOfBirth = "07.07.1970"
	assert.Error(t, req.Apply(&p))
}

func TestNewPatientWithMedicResponse(t *testing.T) {
	row := PatientWithMedicRow{
		ID: 1, FullName: "P", DateOfBirth: mustDate(t, "1999-09-09"), PolicyNumber: 123456, SocialStatus: "student",
		MedicID: 2, MedicFullName: "Dr. M", MedicSpeciality: "Oncologist",
	}
	resp := NewPatientWithMedicResponse(row)

	assert.Equal(t, "1999-09-09", resp.DateOfBirth)
	assert.Equal(t, AssignedMedic{ID: 2, FullName: "Dr. M", Speciality: "Oncologist"}, resp.Medic)
}
