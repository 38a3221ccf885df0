package dto

import (
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
)

// PersonalTaskDTO represents a private task in API responses
type PersonalTaskDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `json:"category"`
	OwnerID     uint64     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GroupTaskDTO represents a group task with its references resolved to
// user summaries
type GroupTaskDTO struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	Deadline      *time.Time `json:"deadline"`
	Category      string     `json:"category"`
	GroupID       uint64     `json:"group_id"`
	CreatedBy     *UserDTO   `json:"created_by"`
	AssignedTo    *UserDTO   `json:"assigned_to"`
	CompletedByID *uint64    `json:"completed_by_id"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToPersonalTaskDTO converts a PersonalTask model to PersonalTaskDTO
func ToPersonalTaskDTO(task models.PersonalTask) PersonalTaskDTO {
	return PersonalTaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Status:      task.Status,
		Description: task.Description,
		Deadline:    task.Deadline,
		Category:    task.Category,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToPersonalTaskDTOs converts a slice of personal tasks
func ToPersonalTaskDTOs(tasks []models.PersonalTask) []PersonalTaskDTO {
	dtos := make([]PersonalTaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToPersonalTaskDTO(t)
	}
	return dtos
}

// ToGroupTaskDTO converts a GroupTask to GroupTaskDTO, resolving creator and
// assignee from the given user map. IDs missing from the map resolve to nil
// references rather than failing.
func ToGroupTaskDTO(task models.GroupTask, users map[uint64]models.User) GroupTaskDTO {
	dto := GroupTaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		Status:        task.Status,
		Description:   task.Description,
		Deadline:      task.Deadline,
		Category:      task.Category,
		GroupID:       task.GroupID,
		CompletedByID: task.CompletedByID,
		CompletedAt:   task.CompletedAt,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}

	if u, ok := users[task.CreatedByID]; ok {
		summary := ToUserDTO(u)
		dto.CreatedBy = &summary
	}

	if task.AssignedToID != nil {
		if u, ok := users[*task.AssignedToID]; ok {
			summary := ToUserDTO(u)
			dto.AssignedTo = &summary
		}
	}

	return dto
}

// ToGroupTaskDTOs converts a slice of group tasks with a shared user map
func ToGroupTaskDTOs(tasks []models.GroupTask, users map[uint64]models.User) []GroupTaskDTO {
	dtos := make([]GroupTaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToGroupTaskDTO(t, users)
	}
	return dtos
}
