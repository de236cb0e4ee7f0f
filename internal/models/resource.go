package models

import "time"

// Resource types a data-space resource can wrap.
const (
	ResourceTypeModel     = "model"
	ResourceTypeFLService = "fl_service"
)

// DataSpaceResource links a shared asset (ML model or FL service) to the
// data space under a connector. ResourceID is a content hash generated at
// creation time.
type DataSpaceResource struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	ResourceID  string    `gorm:"size:64;uniqueIndex;not null" json:"resource_id"`
	ConnectorID string    `gorm:"size:128;index;not null" json:"connector_id"`
	AssetID     string    `gorm:"size:64;index;not null" json:"asset_id"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	Timestamp   string    `gorm:"size:40" json:"timestamp"`
	CreatedAt   time.Time `json:"-"`
}
