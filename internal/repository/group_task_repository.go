package repository

import (
	"github.com/taskapp/taskapp-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupTaskRepository is a GORM implementation of GroupTaskRepository
type GormGroupTaskRepository struct {
	db *gorm.DB
}

// NewGroupTaskRepository creates a new GroupTaskRepository
func NewGroupTaskRepository(db *gorm.DB) GroupTaskRepository {
	return &GormGroupTaskRepository{db: db}
}

// Create creates a new group task
func (r *GormGroupTaskRepository) Create(task *models.GroupTask) error {
	return r.db.Create(task).Error
}

// FindByIDInGroup finds a task by ID scoped to a group
func (r *GormGroupTaskRepository) FindByIDInGroup(id, groupID uint64) (*models.GroupTask, error) {
	var task models.GroupTask
	if err := r.db.Where("id = ? AND group_id = ?", id, groupID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByGroup lists every task in a group
func (r *GormGroupTaskRepository) ListByGroup(groupID uint64) ([]models.GroupTask, error) {
	var tasks []models.GroupTask
	if err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListVisibleTo lists the tasks a non-admin member may see: the union of
// tasks assigned to them and tasks created by them.
func (r *GormGroupTaskRepository) ListVisibleTo(groupID, userID uint64) ([]models.GroupTask, error) {
	var tasks []models.GroupTask
	if err := r.db.Where("group_id = ?", groupID).
		Where(r.db.Where("assigned_to_id = ?", userID).Or("created_by_id = ?", userID)).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a group task
func (r *GormGroupTaskRepository) Update(task *models.GroupTask) error {
	return r.db.Save(task).Error
}
