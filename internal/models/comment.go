package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment carries a UUID reference alongside the numeric id so external
// systems can link to it without depending on row numbering.
type Comment struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Ref         string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"ref"`
	Description string         `gorm:"type:text;not null" json:"description"`
	AuthorID    uint64         `gorm:"not null" json:"author_id"`
	IssueID     uint64         `gorm:"not null" json:"issue_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Issue  Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
}
