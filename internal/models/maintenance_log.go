package models

import (
	"time"

	"gorm.io/datatypes"
)

type LogStatus string

const (
	LogStatusDone   LogStatus = "DONE"
	LogStatusFailed LogStatus = "FAILED"
)

func (s LogStatus) Valid() bool {
	return s == LogStatusDone || s == LogStatusFailed
}

type TaskType string

const (
	TaskMaintenance TaskType = "MAINTENANCE"
	TaskProduction  TaskType = "PRODUCTION"
	TaskError       TaskType = "ERROR"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskMaintenance, TaskProduction, TaskError:
		return true
	}
	return false
}

// MaintenanceLog records one piece of work on an asset. Logs are never
// modified once written.
type MaintenanceLog struct {
	ID            uint           `json:"id" gorm:"column:log_id;primaryKey"`
	PerformedDate datatypes.Date `json:"performed_date" gorm:"not null;index"`
	Status        LogStatus      `json:"status" gorm:"type:varchar(20);not null"`   // DONE, FAILED
	TaskType      TaskType       `json:"task_type" gorm:"type:varchar(20);not null"` // MAINTENANCE, PRODUCTION, ERROR
	Comment       string         `json:"comment" gorm:"type:text;not null"`

	AssetID uint   `json:"asset_id" gorm:"not null;index"`
	Asset   *Asset `json:"asset,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	PerformedByUserID uint  `json:"performed_by_user_id" gorm:"column:performed_by_user_id;not null;index"`
	PerformedBy       *User `json:"performed_by,omitempty" gorm:"foreignKey:PerformedByUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (MaintenanceLog) TableName() string { return "maintenance_logs" }

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
