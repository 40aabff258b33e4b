package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Patient represents a patient entity
// @Description Patient information
type Patient struct {
	ID            uint           `json:"id" gorm:"primaryKey" example:"1"`
	FullName      string         `json:"full_name" gorm:"column:full_name;type:varchar(150);not null" example:"John Doe"`
	DateOfBirth   datatypes.Date `json:"date_of_birth" gorm:"column:date_of_birth;not null"`
	PolicyNumber  int64          `json:"policy_number" gorm:"column:policy_number;not null;uniqueIndex:idx_patients_policy_number" example:"482913"`
	SocialStatus  string         `json:"social_status" gorm:"column:social_status;type:varchar(100);not null" example:"student"`
	MedicID       *uint          `json:"medic_id" gorm:"column:medic_id;index" example:"3"`
	Medic         *Medic         `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	SearchPayload datatypes.JSON `json:"search_payload,omitempty" gorm:"column:search_payload"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
}

// PatientRequest is the body accepted when creating or replacing a patient
// @Description Patient request information
type PatientRequest struct {
	FullName      string          `json:"full_name" binding:"required" example:"John Doe"`
	DateOfBirth   string          `json:"date_of_birth" binding:"required" example:"1990-04-12"`
	PolicyNumber  int64           `json:"policy_number" example:"482913"`
	SocialStatus  string          `json:"social_status" binding:"required" example:"student"`
	SearchPayload json.RawMessage `json:"search_payload,omitempty" swaggertype:"object"`
}

// Apply overwrites every client-owned field of p with the request values.
// The assigned medic is not client-owned and is left untouched.
func (r PatientRequest) Apply(p *Patient) error {
	dob, err := ParseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return err
	}
	p.FullName = r.FullName
	p.DateOfBirth = dob
	p.PolicyNumber = r.PolicyNumber
	p.SocialStatus = r.SocialStatus
	p.SearchPayload = nil
	if len(r.SearchPayload) > 0 && string(r.SearchPayload) != "null" {
		p.SearchPayload = datatypes.JSON(r.SearchPayload)
	}
	return nil
}

// PatientResponse is the patient shape returned by the API
// @Description Patient response information
type PatientResponse struct {
	ID            uint           `json:"id" example:"1"`
	FullName      string         `json:"full_name" example:"John Doe"`
	DateOfBirth   string         `json:"date_of_birth" example:"1990-04-12"`
	PolicyNumber  int64          `json:"policy_number" example:"482913"`
	SocialStatus  string         `json:"social_status" example:"student"`
	MedicID       *uint          `json:"medic_id" example:"3"`
	SearchPayload datatypes.JSON `json:"search_payload,omitempty" swaggertype:"object"`
}

// NewPatientResponse converts a patient into its API shape, with dates as YYYY-MM-DD.
func NewPatientResponse(p Patient) PatientResponse {
	return PatientResponse{
		ID:            p.ID,
		FullName:      p.FullName,
		DateOfBirth:   FormatDate(p.DateOfBirth),
		PolicyNumber:  p.PolicyNumber,
		SocialStatus:  p.SocialStatus,
		MedicID:       p.MedicID,
		SearchPayload: p.SearchPayload,
	}
}

// AssignedMedic is the medic summary embedded in PatientWithMedicResponse.
type AssignedMedic struct {
	ID         uint   `json:"id" example:"3"`
	FullName   string `json:"full_name" example:"Dr. John Smith"`
	Speciality string `json:"speciality" example:"Cardiologist"`
}

// PatientWithMedicRow is the flat result of joining patients to their assigned medic.
type PatientWithMedicRow struct {
	ID              uint           `gorm:"column:id"`
	FullName        string         `gorm:"column:full_name"`
	DateOfBirth     datatypes.Date `gorm:"column:date_of_birth"`
	PolicyNumber    int64          `gorm:"column:policy_number"`
	SocialStatus    string         `gorm:"column:social_status"`
	MedicID         uint           `gorm:"column:medic_id"`
	MedicFullName   string         `gorm:"column:medic_full_name"`
	MedicSpeciality string         `gorm:"column:medic_speciality"`
}

// PatientWithMedicResponse is a patient together with its assigned medic
// @Description Patient with assigned medic
type PatientWithMedicResponse struct {
	ID           uint          `json:"id" example:"1"`
	FullName     string        `json:"full_name" example:"John Doe"`
	DateOfBirth  string        `json:"date_of_birth" example:"1990-04-12"`
	PolicyNumber int64         `json:"policy_number" example:"482913"`
	SocialStatus string        `json:"social_status" example:"student"`
	Medic        AssignedMedic `json:"medic"`
}

// NewPatientWithMedicResponse nests the joined medic columns of row under "medic".
func NewPatientWithMedicResponse(row PatientWithMedicRow) PatientWithMedicResponse {
	return PatientWithMedicResponse{
		ID:           row.ID,
		FullName:     row.FullName,
		DateOfBirth:  FormatDate(row.DateOfBirth),
		PolicyNumber: row.PolicyNumber,
		SocialStatus: row.SocialStatus,
		Medic: AssignedMedic{
			ID:         row.MedicID,
			FullName:   row.MedicFullName,
			Speciality: row.MedicSpeciality,
		},
	}
}
