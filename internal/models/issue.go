package models

import (
	"time"

	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssueStatusTodo       IssueStatus = "To Do"
	IssueStatusInProgress IssueStatus = "In Progress"
	IssueStatusFinished   IssueStatus = "Finished"
)

type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "LOW"
	IssuePriorityMedium IssuePriority = "MEDIUM"
	IssuePriorityHigh   IssuePriority = "HIGH"
)

type IssueTag string

const (
	IssueTagBug     IssueTag = "BUG"
	IssueTagFeature IssueTag = "FEATURE"
	IssueTagTask    IssueTag = "TASK"
)

type Issue struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      IssueStatus    `gorm:"type:varchar(100);not null;default:'To Do'" json:"status"`
	Priority    IssuePriority  `gorm:"type:varchar(100)" json:"priority"`
	Tag         IssueTag       `gorm:"type:varchar(100)" json:"tag"`
	AuthorID    uint64         `gorm:"not null" json:"author_id"`
	ProjectID   uint64         `gorm:"not null" json:"project_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID" json:"comments,omitempty"`
}
