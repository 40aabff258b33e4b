package model

import (
	"time"

	"gorm.io/datatypes"
)

// RequestLog represents a persisted endpoint call
type RequestLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
	RequestID  string         `json:"request_id" gorm:"column:request_id;type:varchar(64);index"`
	Method     string         `json:"method" gorm:"column:method;type:varchar(16)"`
	Path       string         `json:"path" gorm:"column:path;type:varchar(255);index"`
	Status     int            `json:"status" gorm:"column:status"`
	DurationMS int64          `json:"duration_ms" gorm:"column:duration_ms"`
	IP         string         `json:"ip" gorm:"column:ip;type:varchar(45)"`
	UserAgent  string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message    string         `json:"message" gorm:"column:message;type:text"`
	Details    datatypes.JSON `json:"details" gorm:"column:details"`
}
