package repository

import (
	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/ariebrainware/hospital-records/model"
	"gorm.io/gorm"
)

const treatmentKind = "Treatment"

// CreateTreatment inserts a treatment and assigns its medic to the treated patient.
func CreateTreatment(db *gorm.DB, req model.TreatmentRequest) (model.Treatment, error) {
	var treatment model.Treatment
	if err := req.Apply(&treatment); err != nil {
		return model.Treatment{}, apperror.BadRequest(err.Error(), nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var patient model.Patient
		if err := tx.First(&patient, treatment.PatientID).Error; err != nil {
			return translate(err, patientKind)
		}
		var medic model.Medic
		if err := tx.First(&medic, treatment.MedicID).Error; err != nil {
			return translate(err, medicKind)
		}
		if err := tx.Create(&treatment).Error; err != nil {
			return err
		}
		return tx.Model(&patient).Update("medic_id", medic.ID).Error
	})
	if err != nil {
		return model.Treatment{}, translate(err, treatmentKind)
	}
	return treatment, nil
}

// GetTreatment fetches a treatment by id.
func GetTreatment(db *gorm.DB, id uint) (model.Treatment, error) {
	var treatment model.Treatment
	if err := db.First(&treatment, id).Error; err != nil {
		return model.Treatment{}, translate(err, treatmentKind)
	}
	return treatment, nil
}

// ListTreatments returns one window of treatments in id order.
func ListTreatments(db *gorm.DB, page Page) ([]model.Treatment, error) {
	var treatments []model.Treatment
	if err := page.apply(db.Order("treatments.id")).Find(&treatments).Error; err != nil {
		return nil, translate(err, treatmentKind)
	}
	return treatments, nil
}

// UpdateTreatment replaces every field of the treatment.
func UpdateTreatment(db *gorm.DB, id uint, req model.TreatmentRequest) (model.Treatment, error) {
	var treatment model.Treatment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&treatment, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&treatment); err != nil {
			return apperror.BadRequest(err.Error(), nil)
		}
		return tx.Save(&treatment).Error
	})
	if err != nil {
		return model.Treatment{}, translate(err, treatmentKind)
	}
	return treatment, nil
}

// UpdateTreatmentByConditions finds the first treatment with the given diagnosis and
// current state and overwrites its fields from req, but only when req.PatientID is
// non-zero. With a zero patient id the match is returned unchanged.
func UpdateTreatmentByConditions(db *gorm.DB, diagnosis, currentState string, req model.TreatmentRequest) (model.Treatment, error) {
	var treatment model.Treatment
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("diagnosis = ? AND current_state = ?", diagnosis, currentState).
			Order("id").
			First(&treatment).Error
		if err != nil {
			return err
		}
		if req.PatientID == 0 {
			return nil
		}
		if err := req.Apply(&treatment); err != nil {
			return apperror.BadRequest(err.Error(), nil)
		}
		return tx.Save(&treatment).Error
	})
	if err != nil {
		return model.Treatment{}, translate(err, treatmentKind)
	}
	return treatment, nil
}

// DeleteTreatment removes a treatment by id.
func DeleteTreatment(db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var treatment model.Treatment
		if err := tx.First(&treatment, id).Error; err != nil {
			return err
		}
		return tx.Delete(&treatment).Error
	})
	return translate(err, treatmentKind)
}

// TreatmentStats counts treatments per distinct diagnosis.
func TreatmentStats(db *gorm.DB) (map[string]int64, error) {
	var rows []model.DiagnosisCount
	err := db.Model(&model.Treatment{}).
		Select("diagnosis, COUNT(*) AS total").
		Group("diagnosis").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, treatmentKind)
	}

	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.Diagnosis] = row.Total
	}
	return stats, nil
}
