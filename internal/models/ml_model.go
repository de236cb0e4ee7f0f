package models

import (
	"time"

	"gorm.io/datatypes"
)

type MLModel struct {
	ID           int64          `gorm:"primaryKey" json:"-"`
	ModelID      string         `gorm:"size:64;uniqueIndex;not null" json:"model_id"`
	Name         string         `gorm:"size:200;not null" json:"name"`
	Version      string         `gorm:"size:50;not null" json:"version"`
	Description  string         `gorm:"size:500" json:"description"`
	Semantics    datatypes.JSON `gorm:"type:json" json:"semantics"`
	ArtifactPath string         `gorm:"size:255" json:"artifact_path"`
	Timestamp    string         `gorm:"size:40" json:"timestamp"`
	CreatedAt    time.Time      `json:"-"`
}
