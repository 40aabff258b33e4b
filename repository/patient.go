package repository

import (
	"errors"
	"strings"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/ariebrainware/hospital-records/model"
	"gorm.io/gorm"
)

const patientKind = "Patient"

var patientSort = sortColumns{
	table:   "patients",
	columns: []string{"id", "full_name", "date_of_birth", "policy_number", "social_status"},
}

func ensurePolicyNumberAvailable(tx *gorm.DB, policyNumber int64, exceptID uint) error {
	var existing model.Patient
	query := tx.Where("policy_number = ?", policyNumber)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return apperror.Conflict("Policy number already registered", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func translatePatient(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("Policy number already registered", err)
	}
	return translate(err, patientKind)
}

// CreatePatient inserts a new patient built from req.
func CreatePatient(db *gorm.DB, req model.PatientRequest) (model.Patient, error) {
	var patient model.Patient
	if err := req.Apply(&patient); err != nil {
		return model.Patient{}, apperror.BadRequest(err.Error(), nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensurePolicyNumberAvailable(tx, patient.PolicyNumber, 0); err != nil {
			return err
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return model.Patient{}, translatePatient(err)
	}
	return patient, nil
}

// GetPatient fetches a patient by id.
func GetPatient(db *gorm.DB, id uint) (model.Patient, error) {
	var patient model.Patient
	if err := db.First(&patient, id).Error; err != nil {
		return model.Patient{}, translate(err, patientKind)
	}
	return patient, nil
}

// ListPatients returns one window of patients in id order.
func ListPatients(db *gorm.DB, page Page) ([]model.Patient, error) {
	var patients []model.Patient
	if err := page.apply(db.Order("patients.id")).Find(&patients).Error; err != nil {
		return nil, translate(err, patientKind)
	}
	return patients, nil
}

// SortPatients returns one window of patients ordered by an allow-listed column.
// Unknown columns and order tokens other than asc/desc are rejected with BadRequest.
func SortPatients(db *gorm.DB, sortBy, order string, page Page) ([]model.Patient, error) {
	if sortBy == "" {
		sortBy = "id"
	}
	if order == "" {
		order = OrderAsc
	}
	order = strings.ToLower(order)
	if order != OrderAsc && order != OrderDesc {
		return nil, apperror.BadRequest("Invalid order value, use 'asc' or 'desc'", nil)
	}
	column, ok := patientSort.lookup(sortBy)
	if !ok {
		return nil, apperror.BadRequest("Invalid sort field, use one of: "+patientSort.allowed(), nil)
	}

	var patients []model.Patient
	query := db.Clauses(orderBy(patientSort.table, column, order == OrderDesc))
	if err := page.apply(query).Find(&patients).Error; err != nil {
		return nil, translate(err, patientKind)
	}
	return patients, nil
}

// UpdatePatient replaces every client-owned field of the patient.
func UpdatePatient(db *gorm.DB, id uint, req model.PatientRequest) (model.Patient, error) {
	var patient model.Patient
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&patient, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&patient); err != nil {
			return apperror.BadRequest(err.Error(), nil)
		}
		if err := ensurePolicyNumberAvailable(tx, patient.PolicyNumber, patient.ID); err != nil {
			return err
		}
		return tx.Save(&patient).Error
	})
	if err != nil {
		return model.Patient{}, translatePatient(err)
	}
	return patient, nil
}

// DeletePatient removes the patient and every treatment that references it.
func DeletePatient(db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var patient model.Patient
		if err := tx.First(&patient, id).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.Treatment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patient).Error
	})
	return translate(err, patientKind)
}

// SearchPatients returns the distinct patients having a treatment with the given
// diagnosis and current state. An empty result is reported as NotFound.
func SearchPatients(db *gorm.DB, diagnosis, currentState string) ([]model.Patient, error) {
	var patients []model.Patient
	err := db.Model(&model.Patient{}).
		Where("patients.id IN (?)", db.Model(&model.Treatment{}).
			Select("treatments.patient_id").
			Where("treatments.diagnosis = ? AND treatments.current_state = ?", diagnosis, currentState)).
		Order("patients.id").
		Find(&patients).Error
	if err != nil {
		return nil, translate(err, patientKind)
	}
	if len(patients) == 0 {
		return nil, &apperror.Error{Kind: apperror.ErrNotFound, Message: "No patients found for the given diagnosis and state"}
	}
	return patients, nil
}

// PatientsWithMedic lists the patients that have an assigned medic, joined to that medic.
func PatientsWithMedic(db *gorm.DB) ([]model.PatientWithMedicRow, error) {
	var rows []model.PatientWithMedicRow
	err := db.Table("patients").
		Select("patients.id, patients.full_name, patients.date_of_birth, patients.policy_number, patients.social_status, " +
			"medics.id AS medic_id, medics.full_name AS medic_full_name, medics.speciality AS medic_speciality").
		Joins("JOIN medics ON medics.id = patients.medic_id").
		Order("patients.id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, patientKind)
	}
	return rows, nil
}
