package repository

import (
	"github.com/taskapp/taskapp-api/internal/models"
	"gorm.io/gorm"
)

// GormPersonalTaskRepository is a GORM implementation of PersonalTaskRepository
type GormPersonalTaskRepository struct {
	db *gorm.DB
}

// NewPersonalTaskRepository creates a new PersonalTaskRepository
func NewPersonalTaskRepository(db *gorm.DB) PersonalTaskRepository {
	return &GormPersonalTaskRepository{db: db}
}

// Create creates a new personal task
func (r *GormPersonalTaskRepository) Create(task *models.PersonalTask) error {
	return r.db.Create(task).Error
}

// ListByOwner lists the owner's tasks
func (r *GormPersonalTaskRepository) ListByOwner(ownerID uint64) ([]models.PersonalTask, error) {
	var tasks []models.PersonalTask
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByIDForOwner finds a task by ID within the owner's tasks. A foreign
// task ID falls out of the scoped query as record-not-found, so callers see
// NotFound rather than Forbidden.
func (r *GormPersonalTaskRepository) FindByIDForOwner(id, ownerID uint64) (*models.PersonalTask, error) {
	var task models.PersonalTask
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a personal task
func (r *GormPersonalTaskRepository) Update(task *models.PersonalTask) error {
	return r.db.Save(task).Error
}
