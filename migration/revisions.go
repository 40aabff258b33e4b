package migration

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 202312142125: base tables and the treatment/medic join table.

type medic202312142125 struct {
	ID         uint   `gorm:"primaryKey"`
	FullName   string `gorm:"type:varchar(150);not null"`
	Speciality string `gorm:"type:varchar(100);not null"`
	ExpYears   int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (medic202312142125) TableName() string { return "medics" }

type patient202312142125 struct {
	ID           uint           `gorm:"primaryKey"`
	FullName     string         `gorm:"type:varchar(150);not null"`
	DateOfBirth  datatypes.Date `gorm:"not null"`
	PolicyNumber int64          `gorm:"not null"`
	SocialStatus string         `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (patient202312142125) TableName() string { return "patients" }

type treatment202312142125 struct {
	ID           uint                 `gorm:"primaryKey"`
	Diagnosis    string               `gorm:"type:varchar(150);not null;index"`
	CurrentState string               `gorm:"type:varchar(150);not null"`
	DateStart    datatypes.Date       `gorm:"not null"`
	DateEnd      datatypes.Date       `gorm:"not null"`
	PatientID    uint                 `gorm:"not null;index"`
	Patient      *patient202312142125 `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MedicID      uint                 `gorm:"not null;index"`
	Medic        *medic202312142125   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (treatment202312142125) TableName() string { return "treatments" }

type treatmentMedic202312142125 struct {
	TreatmentID uint                   `gorm:"primaryKey;autoIncrement:false"`
	Treatment   *treatment202312142125 `gorm:"constraint:OnDelete:CASCADE;"`
	MedicID     uint                   `gorm:"primaryKey;autoIncrement:false"`
	Medic       *medic202312142125     `gorm:"constraint:OnDelete:CASCADE;"`
}

func (treatmentMedic202312142125) TableName() string { return "treatment_medic" }

func initial() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202312142125_initial",
		Migrate: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(
				&medic202312142125{},
				&patient202312142125{},
				&treatment202312142125{},
				&treatmentMedic202312142125{},
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(
				&treatmentMedic202312142125{},
				&treatment202312142125{},
				&patient202312142125{},
				&medic202312142125{},
			)
		},
	}
}

// 202312152252: drop the join table, patients point at their assigned medic.

type patient202312152252 struct {
	ID      uint               `gorm:"primaryKey"`
	MedicID *uint              `gorm:"index"`
	Medic   *medic202312142125 `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (patient202312152252) TableName() string { return "patients" }

func collapseTreatmentMedic() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202312152252_collapse_treatment_medic",
		Migrate: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if err := m.DropTable(&treatmentMedic202312142125{}); err != nil {
				return err
			}
			if err := m.AddColumn(&patient202312152252{}, "MedicID"); err != nil {
				return err
			}
			if err := m.CreateIndex(&patient202312152252{}, "MedicID"); err != nil {
				return err
			}
			// sqlite cannot add a foreign key to an existing table
			if isSQLite(tx) {
				return nil
			}
			return m.CreateConstraint(&patient202312152252{}, "Medic")
		},
		Rollback: func(tx *gorm.DB) error {
			m := tx.Migrator()
			if !isSQLite(tx) {
				if err := m.DropConstraint(&patient202312152252{}, "Medic"); err != nil {
					return err
				}
			}
			if err := m.DropIndex(&patient202312152252{}, "MedicID"); err != nil {
				return err
			}
			if err := m.DropColumn(&patient202312152252{}, "MedicID"); err != nil {
				return err
			}
			return m.CreateTable(&treatmentMedic202312142125{})
		},
	}
}

// 202312152300: policy numbers are unique.

type patient202312152300 struct {
	ID           uint  `gorm:"primaryKey"`
	PolicyNumber int64 `gorm:"not null;uniqueIndex:idx_patients_policy_number"`
}

func (patient202312152300) TableName() string { return "patients" }

func uniquePolicyNumber() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202312152300_unique_policy_number",
		Migrate: func(tx *gorm.DB) error {
			return tx.Migrator().CreateIndex(&patient202312152300{}, "idx_patients_policy_number")
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropIndex(&patient202312152300{}, "idx_patients_policy_number")
		},
	}
}

// 202312160101: free form search payload, JSONB on postgres.

type patient202312160101 struct {
	ID            uint `gorm:"primaryKey"`
	SearchPayload datatypes.JSON
}

func (patient202312160101) TableName() string { return "patients" }

func patientSearchPayload() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202312160101_patient_search_payload",
		Migrate: func(tx *gorm.DB) error {
			return tx.Migrator().AddColumn(&patient202312160101{}, "SearchPayload")
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(&patient202312160101{}, "SearchPayload")
		},
	}
}

// 202312170900: persisted request events.

type requestLog202312170900 struct {
	ID         uint      `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
	RequestID  string    `gorm:"type:varchar(64);index"`
	Method     string    `gorm:"type:varchar(16)"`
	Path       string    `gorm:"type:varchar(255);index"`
	Status     int
	DurationMS int64  `gorm:"column:duration_ms"`
	IP         string `gorm:"type:varchar(45)"`
	UserAgent  string `gorm:"type:varchar(512)"`
	Message    string `gorm:"type:text"`
	Details    datatypes.JSON
}

func (requestLog202312170900) TableName() string { return "request_logs" }

func requestLogs() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202312170900_request_logs",
		Migrate: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&requestLog202312170900{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&requestLog202312170900{})
		},
	}
}
