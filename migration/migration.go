// Package migration holds the ordered schema revisions of the hospital records database.
// Every revision works on its own snapshot structs so later model changes never rewrite history.
package migration

import (
	"fmt"

	"github.com/ariebrainware/hospital-records/model"
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Status reports whether one revision has been applied.
type Status struct {
	ID      string
	Applied bool
}

var options = &gormigrate.Options{
	TableName:                 "migrations",
	IDColumnName:              "id",
	IDColumnSize:              255,
	UseTransaction:            false,
	ValidateUnknownMigrations: true,
}

// Migrations returns every revision in application order.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		initial(),
		collapseTreatmentMedic(),
		uniquePolicyNumber(),
		patientSearchPayload(),
		requestLogs(),
	}
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, options, Migrations())
}

// Migrate applies every pending revision, then checks the result against the current models.
func Migrate(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := Verify(db); err != nil {
		return err
	}
	log.Info().Int("revisions", len(Migrations())).Msg("database schema up to date")
	return nil
}

// Verify reports the first table or column a persisted model expects but the schema lacks.
func Verify(db *gorm.DB) error {
	m := db.Migrator()
	for _, entity := range model.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(entity); err != nil {
			return fmt.Errorf("verify %T: %w", entity, err)
		}
		table := stmt.Schema.Table
		if !m.HasTable(table) {
			return fmt.Errorf("verify: table %s is missing", table)
		}
		for _, column := range stmt.Schema.DBNames {
			if !m.HasColumn(entity, column) {
				return fmt.Errorf("verify: column %s.%s is missing", table, column)
			}
		}
	}
	return nil
}

// RollbackLast reverts the most recently applied revision.
func RollbackLast(db *gorm.DB) error {
	if err := newMigrator(db).RollbackLast(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// StatusOf lists every known revision with its applied flag.
func StatusOf(db *gorm.DB) ([]Status, error) {
	applied := map[string]bool{}
	if db.Migrator().HasTable(options.TableName) {
		var ids []string
		if err := db.Table(options.TableName).Pluck(options.IDColumnName, &ids).Error; err != nil {
			return nil, fmt.Errorf("read %s: %w", options.TableName, err)
		}
		for _, id := range ids {
			applied[id] = true
		}
	}

	migrations := Migrations()
	statuses := make([]Status, 0, len(migrations))
	for _, m := range migrations {
		statuses = append(statuses, Status{ID: m.ID, Applied: applied[m.ID]})
	}
	return statuses, nil
}

func isSQLite(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "sqlite"
}
