package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every date field (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// ParseDate converts a YYYY-MM-DD string into a date column value.
func ParseDate(field, value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a date column value as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
