package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Username        string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Age             int            `gorm:"not null" json:"age"`
	CanBeContacted  bool           `gorm:"not null;default:false" json:"can_be_contacted"`
	CanDataBeShared bool           `gorm:"not null;default:false" json:"can_data_be_shared"`
	PasswordHash    string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects      []Project     `gorm:"foreignKey:AuthorID" json:"-"`
	Contributions []Contributor `gorm:"foreignKey:UserID" json:"-"`
}
