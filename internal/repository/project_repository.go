package repository

import (
	"github.com/softdesk/softdesk-api/internal/database"
	"github.com/softdesk/softdesk-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and enrolls the author as a contributor atomically
func (r *GormProjectRepository) Create(project *models.Project, author *models.Contributor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		author.ProjectID = project.ID
		author.UserID = project.AuthorID

		return tx.Create(author).Error
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects with pagination, newest first
func (r *GormProjectRepository) List(offset, limit int) ([]models.Project, int64, error) {
	var projects []models.Project

	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("Author").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(offset, limit)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project, its contributors, issues and comments in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		issueIDs := tx.Model(&models.Issue{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("issue_id IN (?)", issueIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddContributor adds a contributor to a project
func (r *GormProjectRepository) AddContributor(contributor *models.Contributor) error {
	return r.db.Create(contributor).Error
}

// RemoveContributor removes a contributor from a project
func (r *GormProjectRepository) RemoveContributor(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.Contributor{}).Error
}

// FindContributor finds a specific contributor row
func (r *GormProjectRepository) FindContributor(projectID, userID uint64) (*models.Contributor, error) {
	var contributor models.Contributor
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&contributor).Error; err != nil {
		return nil, err
	}
	return &contributor, nil
}

// ListContributors lists all contributors of a project
func (r *GormProjectRepository) ListContributors(projectID uint64) ([]models.Contributor, error) {
	var contributors []models.Contributor
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&contributors).Error; err != nil {
		return nil, err
	}
	return contributors, nil
}
