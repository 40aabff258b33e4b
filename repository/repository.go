// Package repository holds the store operations behind every endpoint.
// Each function receives the request scoped *gorm.DB and returns entities or apperror kinds.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/hospital-records/apperror"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPerPage is the window size used when per_page is missing or not positive.
const DefaultPerPage = 10

// Page is an offset/limit window. Offset is a raw row offset, not a page index.
type Page struct {
	Offset int
	Limit  int
}

// NewPage normalizes the page/per_page query values.
func NewPage(page, perPage int) Page {
	if page < 0 {
		page = 0
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Page{Offset: page, Limit: perPage}
}

func (p Page) apply(query *gorm.DB) *gorm.DB {
	return query.Offset(p.Offset).Limit(p.Limit)
}

// Sort orders accepted by the sorted listings.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// sortColumns maps the accepted sort_by tokens of one table to typed columns.
type sortColumns struct {
	table   string
	columns []string
}

func (s sortColumns) lookup(token string) (clause.Column, bool) {
	if !lo.Contains(s.columns, token) {
		return clause.Column{}, false
	}
	return clause.Column{Table: s.table, Name: token}, true
}

func (s sortColumns) allowed() string {
	return strings.Join(s.columns, ", ")
}

// orderBy builds the ORDER BY clause, with the primary key as a tie breaker.
func orderBy(table string, column clause.Column, desc bool) clause.OrderBy {
	columns := []clause.OrderByColumn{{Column: column, Desc: desc}}
	if column.Name != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}
	return clause.OrderBy{Columns: columns}
}

// translate maps gorm errors to apperror kinds for the given entity kind.
func translate(err error, kind string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(kind)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(kind+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.BadRequest("Referenced patient or medic does not exist", err)
	default:
		return fmt.Errorf("%s storage error: %w", strings.ToLower(kind), err)
	}
}
