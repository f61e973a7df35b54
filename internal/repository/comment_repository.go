package repository

import (
	"github.com/softdesk/softdesk-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindByRef finds a comment by its external reference token
func (r *GormCommentRepository) FindByRef(ref string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("ref = ?", ref).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByIssue lists comments of an issue in creation order
func (r *GormCommentRepository) ListByIssue(issueID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("Author").
		Where("issue_id = ?", issueID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByProject lists comments across all issues of a project in creation order
func (r *GormCommentRepository) ListByProject(projectID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("Author").
		Joins("JOIN issues ON issues.id = comments.issue_id").
		Where("issues.project_id = ? AND issues.deleted_at IS NULL", projectID).
		Order("comments.created_at ASC, comments.id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
