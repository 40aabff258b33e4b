package repository

import (
	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/ariebrainware/hospital-records/model"
	"gorm.io/gorm"
)

const medicKind = "Medic"

var medicSort = sortColumns{
	table:   "medics",
	columns: []string{"id", "full_name", "speciality", "exp_years"},
}

// CreateMedic inserts a new medic built from req.
func CreateMedic(db *gorm.DB, req model.MedicRequest) (model.Medic, error) {
	var medic model.Medic
	req.Apply(&medic)
	if err := db.Create(&medic).Error; err != nil {
		return model.Medic{}, translate(err, medicKind)
	}
	return medic, nil
}

// GetMedic fetches a medic by id.
func GetMedic(db *gorm.DB, id uint) (model.Medic, error) {
	var medic model.Medic
	if err := db.First(&medic, id).Error; err != nil {
		return model.Medic{}, translate(err, medicKind)
	}
	return medic, nil
}

// ListMedics returns one window of medics ordered ascending by sortBy (id when empty).
// A sort field outside the medic columns is reported as ErrPassthrough, which surfaces
// as a server error rather than a client error.
func ListMedics(db *gorm.DB, sortBy string, page Page) ([]model.Medic, error) {
	if sortBy == "" {
		sortBy = "id"
	}
	column, ok := medicSort.lookup(sortBy)
	if !ok {
		return nil, apperror.Passthrough("Unsupported medic sort field: "+sortBy, nil)
	}

	var medics []model.Medic
	query := db.Clauses(orderBy(medicSort.table, column, false))
	if err := page.apply(query).Find(&medics).Error; err != nil {
		return nil, translate(err, medicKind)
	}
	return medics, nil
}

// UpdateMedic replaces every field of the medic.
func UpdateMedic(db *gorm.DB, id uint, req model.MedicRequest) (model.Medic, error) {
	var medic model.Medic
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&medic, id).Error; err != nil {
			return err
		}
		req.Apply(&medic)
		return tx.Save(&medic).Error
	})
	if err != nil {
		return model.Medic{}, translate(err, medicKind)
	}
	return medic, nil
}

// DeleteMedic removes the medic and its treatments, and unassigns it from patients.
func DeleteMedic(db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var medic model.Medic
		if err := tx.First(&medic, id).Error; err != nil {
			return err
		}
		if err := tx.Where("medic_id = ?", medic.ID).Delete(&model.Treatment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Patient{}).Where("medic_id = ?", medic.ID).Update("medic_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&medic).Error
	})
	return translate(err, medicKind)
}
