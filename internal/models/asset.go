package models

// Asset is a piece of equipment maintenance is performed on. Only the Active
// flag changes after creation.
type Asset struct {
	ID          uint   `json:"id" gorm:"column:asset_id;primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:varchar(1000);not null"`
	Active      bool   `json:"active" gorm:"not null;index"`

	// Logs is only populated when explicitly loaded.
	Logs []MaintenanceLog `json:"logs,omitempty" gorm:"foreignKey:AssetID;references:ID"`
}

func (Asset) TableName() string { return "assets" }

// AddLog appends log to the asset and points the log back at it.
func (a *Asset) AddLog(log *MaintenanceLog) {
	log.Asset = a
	log.AssetID = a.ID
	a.Logs = append(a.Logs, *log)
}
