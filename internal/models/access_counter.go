package models

import "time"

// AccessCounter tracks the remaining N_TIMES allotment for one
// (resource, consumer) pair. Counts are allowed to go negative past
// exhaustion; callers treat <= 0 as no access remaining.
type AccessCounter struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	ResourceID  string    `gorm:"size:64;uniqueIndex:idx_resource_consumer;not null" json:"resource_id"`
	ConsumerURI string    `gorm:"size:255;uniqueIndex:idx_resource_consumer;not null" json:"consumer_uri"`
	AccessCount int       `gorm:"not null" json:"access_count"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
