package model

import (
	"time"

	"gorm.io/datatypes"
)

// Treatment represents a treatment entity
// @Description Treatment information
type Treatment struct {
	ID           uint           `json:"id" gorm:"primaryKey" example:"1"`
	Diagnosis    string         `json:"diagnosis" gorm:"column:diagnosis;type:varchar(150);not null;index" example:"Bronchitis"`
	CurrentState string         `json:"current_state" gorm:"column:current_state;type:varchar(150);not null" example:"moderate"`
	DateStart    datatypes.Date `json:"date_start" gorm:"column:date_start;not null"`
	DateEnd      datatypes.Date `json:"date_end" gorm:"column:date_end;not null"`
	PatientID    uint           `json:"patient_id" gorm:"column:patient_id;not null;index" example:"1"`
	Patient      *Patient       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MedicID      uint           `json:"medic_id" gorm:"column:medic_id;not null;index" example:"1"`
	Medic        *Medic         `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}

// TreatmentRequest is the body accepted when creating or replacing a treatment
// @Description Treatment request information
type TreatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required" example:"Bronchitis"`
	CurrentState string `json:"current_state" binding:"required" example:"moderate"`
	DateStart    string `json:"date_start" binding:"required" example:"2025-01-15"`
	DateEnd      string `json:"date_end" binding:"required" example:"2025-02-01"`
	PatientID    uint   `json:"patient_id" example:"1"`
	MedicID      uint   `json:"medic_id" example:"1"`
}

// Apply overwrites every field of t with the request values.
func (r TreatmentRequest) Apply(t *Treatment) error {
	start, err := ParseDate("date_start", r.DateStart)
	if err != nil {
		return err
	}
	end, err := ParseDate("date_end", r.DateEnd)
	if err != nil {
		return err
	}
	t.Diagnosis = r.Diagnosis
	t.CurrentState = r.CurrentState
	t.DateStart = start
	t.DateEnd = end
	t.PatientID = r.PatientID
	t.MedicID = r.MedicID
	return nil
}

// TreatmentResponse is the treatment shape returned by the API
// @Description Treatment response information
type TreatmentResponse struct {
	ID           uint   `json:"id" example:"1"`
	Diagnosis    string `json:"diagnosis" example:"Bronchitis"`
	CurrentState string `json:"current_state" example:"moderate"`
	DateStart    string `json:"date_start" example:"2025-01-15"`
	DateEnd      string `json:"date_end" example:"2025-02-01"`
	PatientID    uint   `json:"patient_id" example:"1"`
	MedicID      uint   `json:"medic_id" example:"1"`
}

// NewTreatmentResponse converts a treatment into its API shape.
func NewTreatmentResponse(t Treatment) TreatmentResponse {
	return TreatmentResponse{
		ID:           t.ID,
		Diagnosis:    t.Diagnosis,
		CurrentState: t.CurrentState,
		DateStart:    FormatDate(t.DateStart),
		DateEnd:      FormatDate(t.DateEnd),
		PatientID:    t.PatientID,
		MedicID:      t.MedicID,
	}
}

// DiagnosisCount is one row of the per-diagnosis treatment statistics.
type DiagnosisCount struct {
	Diagnosis string `gorm:"column:diagnosis"`
	Total     int64  `gorm:"column:total"`
}

// DeleteResponse confirms a delete operation
// @Description Delete confirmation
type DeleteResponse struct {
	Message string `json:"message" example:"Patient deleted"`
}
