package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	Role         string    `gorm:"size:50" json:"role"`
	Timestamp    string    `gorm:"size:40" json:"timestamp"`
	CreatedAt    time.Time `json:"-"`
}
