package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes. The lookup against
// pg_indexes only works on PostgreSQL, so callers should skip this for
// other drivers.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Group task indexes for the visibility filter and group scoping
		{"group_tasks", "idx_group_tasks_group_id", "group_id"},
		{"group_tasks", "idx_group_tasks_created_by_id", "created_by_id"},
		{"group_tasks", "idx_group_tasks_assigned_to_id", "assigned_to_id"},

		// Collaborator lookups by group and by user
		{"collaborators", "idx_collaborators_group_id", "group_id"},
		{"collaborators", "idx_collaborators_user_id", "user_id"},

		// Personal task owner scoping
		{"personal_tasks", "idx_personal_tasks_owner_id", "owner_id"},

		// Email is the login and invite key
		{"users", "idx_users_email", "email"},
	}

	for _, idx := range indexes {
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
