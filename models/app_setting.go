package models

import "time"

// AppSetting stores small persistent key/value settings in SQLite.
// Writes are gated by the service-layer allow-list; the table itself is generic.
type AppSetting struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
