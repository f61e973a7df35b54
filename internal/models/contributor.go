package models

import "time"

// Contributor links a user to a project. The composite primary key keeps
// the (project, user) pair unique at the storage layer, so a concurrent
// duplicate enrollment fails on the key rather than on an in-process check.
type Contributor struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
