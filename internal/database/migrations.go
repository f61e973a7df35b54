package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Issue indexes for filtering and sorting
		{"issues", "idx_issues_project_id", "project_id"},
		{"issues", "idx_issues_author_id", "author_id"},
		{"issues", "idx_issues_status", "status"},
		{"issues", "idx_issues_created_at", "created_at"},

		// Comment indexes
		{"comments", "idx_comments_issue_id", "issue_id"},
		{"comments", "idx_comments_author_id", "author_id"},

		// Contributor indexes
		{"contributors", "idx_contributors_project_id", "project_id"},
		{"contributors", "idx_contributors_user_id", "user_id"},

		// Project author index
		{"projects", "idx_projects_author_id", "author_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
