package repository

import (
	"fmt"

	"github.com/softdesk/softdesk-api/internal/database"
	"github.com/softdesk/softdesk-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with pagination
func (r *GormUserRepository) List(offset, limit int) ([]models.User, int64, error) {
	var users []models.User

	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Order("id ASC").Scopes(database.Paginate(offset, limit)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Erase removes the user's authored projects with everything under them,
// the user's contributor rows, and the user itself in one transaction.
// Issues and comments the user authored on other projects are kept. The
// identity columns are scrubbed before the soft delete so the unique
// indexes release the username and email and no PII outlives the request.
func (r *GormUserRepository) Erase(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		authoredProjects := tx.Model(&models.Project{}).Select("id").Where("author_id = ?", id)
		authoredIssues := tx.Model(&models.Issue{}).Select("id").Where("project_id IN (?)", authoredProjects)

		// Delete comments on issues of authored projects
		if err := tx.Where("issue_id IN (?)", authoredIssues).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		// Delete issues of authored projects
		if err := tx.Where("project_id IN (?)", authoredProjects).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		// Delete contributor rows of authored projects
		if err := tx.Where("project_id IN (?)", authoredProjects).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		// Delete the user's own contributor rows on other projects
		if err := tx.Where("user_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		// Delete authored projects
		if err := tx.Where("author_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		// Scrub identity columns, then delete the user
		scrub := map[string]interface{}{
			"username":           fmt.Sprintf("erased-%d", id),
			"email":              fmt.Sprintf("erased-%d@erased.local", id),
			"password_hash":      "",
			"age":                0,
			"can_be_contacted":   false,
			"can_data_be_shared": false,
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(scrub).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
