package models

import "time"

type DataSpaceConnector struct {
	ID              int64     `gorm:"primaryKey" json:"-"`
	ConnectorID     string    `gorm:"size:128;uniqueIndex;not null" json:"id"`
	Name            string    `gorm:"size:200;not null" json:"name"`
	Type            string    `gorm:"size:100;not null" json:"type"`
	Description     string    `gorm:"size:500" json:"description"`
	PublicKey       string    `gorm:"type:text" json:"public_key"`
	AccessURL       string    `gorm:"size:255" json:"access_url"`
	ReverseProxyURL string    `gorm:"size:255" json:"reverse_proxy_url"`
	Timestamp       string    `gorm:"size:40" json:"timestamp"`
	CreatedAt       time.Time `json:"-"`
}
