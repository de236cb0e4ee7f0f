package models

import (
	"time"

	"gorm.io/datatypes"
)

// FLService describes a federated-learning service offered through the
// connector. The nested blocks (session, aggregation, communication,
// security, training) are stored as JSON documents.
type FLService struct {
	ID              int64          `gorm:"primaryKey" json:"-"`
	FLServiceID     string         `gorm:"size:64;uniqueIndex;not null" json:"fl_service_id"`
	Name            string         `gorm:"size:200;not null" json:"name"`
	Description     string         `gorm:"size:500" json:"description"`
	FLSession       datatypes.JSON `gorm:"type:json" json:"fl_session"`
	FLAggregation   datatypes.JSON `gorm:"type:json" json:"fl_aggregation"`
	FLCommunication datatypes.JSON `gorm:"type:json" json:"fl_communication"`
	FLSecurity      datatypes.JSON `gorm:"type:json" json:"fl_security"`
	FLTraining      datatypes.JSON `gorm:"type:json" json:"fl_training"`
	ArtifactPath    string         `gorm:"size:255" json:"artifact_path"`
	Timestamp       string         `gorm:"size:40" json:"timestamp"`
	CreatedAt       time.Time      `json:"-"`
}
