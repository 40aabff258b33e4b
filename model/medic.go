package model

import "time"

// Medic represents a medic entity
// @Description Medic information
type Medic struct {
	ID         uint      `json:"id" gorm:"primaryKey" example:"1"`
	FullName   string    `json:"full_name" gorm:"column:full_name;type:varchar(150);not null" example:"Dr. John Smith"`
	Speciality string    `json:"speciality" gorm:"column:speciality;type:varchar(100);not null" example:"Cardiologist"`
	ExpYears   int       `json:"exp_years" gorm:"column:exp_years;not null" example:"12"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// MedicRequest is the body accepted when creating or replacing a medic
// @Description Medic request information
type MedicRequest struct {
	FullName   string `json:"full_name" binding:"required" example:"Dr. John Smith"`
	Speciality string `json:"speciality" binding:"required" example:"Cardiologist"`
	ExpYears   int    `json:"exp_years" example:"12"`
}

// Apply overwrites every persisted field of m with the request values.
func (r MedicRequest) Apply(m *Medic) {
	m.FullName = r.FullName
	m.Speciality = r.Speciality
	m.ExpYears = r.ExpYears
}

// MedicResponse is the medic shape returned by the API
// @Description Medic response information
type MedicResponse struct {
	ID         uint   `json:"id" example:"1"`
	FullName   string `json:"full_name" example:"Dr. John Smith"`
	Speciality string `json:"speciality" example:"Cardiologist"`
	ExpYears   int    `json:"exp_years" example:"12"`
}

// NewMedicResponse converts a medic into its API shape.
func NewMedicResponse(m Medic) MedicResponse {
	return MedicResponse{
		ID:         m.ID,
		FullName:   m.FullName,
		Speciality: m.Speciality,
		ExpYears:   m.ExpYears,
	}
}
