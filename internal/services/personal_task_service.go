package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/repository"
	"gorm.io/gorm"
)

var ErrPersonalTaskNotFound = errors.New("task not found")

// PersonalTaskService handles private tasks. Access control is query
// scoping: every lookup carries the owner's ID, so foreign task IDs surface
// as not-found instead of forbidden.
type PersonalTaskService struct {
	taskRepo repository.PersonalTaskRepository
}

// NewPersonalTaskService creates a new PersonalTaskService.
func NewPersonalTaskService(taskRepo repository.PersonalTaskRepository) *PersonalTaskService {
	return &PersonalTaskService{
		taskRepo: taskRepo,
	}
}

// CreatePersonalTaskInput represents input for creating a personal task.
type CreatePersonalTaskInput struct {
	OwnerID     uint64
	Name        string
	Status      string
	Description string
	Deadline    *time.Time
	Category    string
}

// CreateTask creates a task owned by the caller.
func (s *PersonalTaskService) CreateTask(input CreatePersonalTaskInput) (*models.PersonalTask, error) {
	if input.Name == "" {
		return nil, ErrTaskNameRequired
	}

	if input.Status == "" {
		input.Status = models.StatusPending
	}

	task := &models.PersonalTask{
		Name:        input.Name,
		Status:      input.Status,
		Description: input.Description,
		Deadline:    input.Deadline,
		Category:    input.Category,
		OwnerID:     input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the caller's tasks.
func (s *PersonalTaskService) ListTasks(ownerID uint64) ([]models.PersonalTask, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdatePersonalTaskInput represents input for updating a personal task.
// Nil fields are left untouched.
type UpdatePersonalTaskInput struct {
	Name        *string
	Status      *string
	Description *string
	Category    *string
	Deadline    *time.Time
}

// UpdateTask updates one of the caller's tasks.
func (s *PersonalTaskService) UpdateTask(taskID, ownerID uint64, input UpdatePersonalTaskInput) (*models.PersonalTask, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonalTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = *input.Name
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
