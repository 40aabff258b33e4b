package repository

import (
	"testing"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/ariebrainware/hospital-records/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicCRUD(t *testing.T) {
	db := setupRepositoryTest(t)

	m := newMedic(t, db, "Dr. Crud")
	got, err := GetMedic(db, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Crud", got.FullName)

	updated, err := UpdateMedic(db, m.ID, model.MedicRequest{FullName: "Dr. Renamed", Speciality: "Oncologist", ExpYears: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.ExpYears)

	require.NoError(t, DeleteMedic(db, m.ID))
	_, err = GetMedic(db, m.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Medic not found", err.Error())

	_, err = UpdateMedic(db, m.ID, model.MedicRequest{FullName: "x", Speciality: "y"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, DeleteMedic(db, m.ID), apperror.ErrNotFound)
}

func TestDeleteMedic_UnassignsPatients(t *testing.T) {
	db := setupRepositoryTest(t)
	gone := newMedic(t, db, "Dr. Gone")
	stays := newMedic(t, db, "Dr. Stays")
	p1 := newPatient(t, db, "One", 41)
	p2 := newPatient(t, db, "Two", 42)
	newTreatment(t, db, "flu", "moderate", p1.ID, gone.ID)
	kept := newTreatment(t, db, "flu", "moderate", p2.ID, stays.ID)

	require.NoError(t, DeleteMedic(db, gone.ID))

	got1, err := GetPatient(db, p1.ID)
	require.NoError(t, err)
	assert.Nil(t, got1.MedicID)

	got2, err := GetPatient(db, p2.ID)
	require.NoError(t, err)
	require.NotNil(t, got2.MedicID)
	assert.Equal(t, stays.ID, *got2.MedicID)

	treatments, err := ListTreatments(db, NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, treatments, 1)
	assert.Equal(t, kept.ID, treatments[0].ID)
}

func TestListMedics(t *testing.T) {
	db := setupRepositoryTest(t)
	for _, n := range []string{"Dr. C", "Dr. A", "Dr. B"} {
		newMedic(t, db, n)
	}

	medics, err := ListMedics(db, "", NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, medics, 3)
	assert.Equal(t, "Dr. C", medics[0].FullName)

	medics, err = ListMedics(db, "full_name", NewPage(1, 1))
	require.NoError(t, err)
	require.Len(t, medics, 1)
	assert.Equal(t, "Dr. B", medics[0].FullName)

	_, err = ListMedics(db, "salary", NewPage(0, 0))
	assert.ErrorIs(t, err, apperror.ErrPassthrough)
	assert.NotErrorIs(t, err, apperror.ErrBadRequest)
}
