package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotGroupMember    = errors.New("user is not a member of the group")
	ErrGroupTaskNotFound = errors.New("task not found")
	ErrInvalidAssignee   = errors.New("assigned user is not a collaborator of the group")
	ErrTaskNameRequired  = errors.New("task name is required")
)

// GroupTaskService applies the group-task authorization rules: membership
// gates every operation, the caller's role decides list visibility, and
// assignees must belong to the task's group.
type GroupTaskService struct {
	taskRepo  repository.GroupTaskRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupTaskService creates a new GroupTaskService.
func NewGroupTaskService(taskRepo repository.GroupTaskRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupTaskService {
	return &GroupTaskService{
		taskRepo:  taskRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroupTaskInput represents input for creating a group task.
type CreateGroupTaskInput struct {
	GroupID      uint64
	ActorID      uint64
	Name         string
	Status       string
	Description  string
	Deadline     *time.Time
	Category     string
	AssignedToID *uint64
}

// CreateTask creates a task in a group. Any member may create; when an
// assignee is given it must be a member of the same group, and nothing is
// persisted otherwise.
func (s *GroupTaskService) CreateTask(input CreateGroupTaskInput) (*models.GroupTask, error) {
	if input.Name == "" {
		return nil, ErrTaskNameRequired
	}

	if _, err := s.requireMember(input.GroupID, input.ActorID); err != nil {
		return nil, err
	}

	if input.AssignedToID != nil {
		if err := s.requireAssignable(input.GroupID, *input.AssignedToID); err != nil {
			return nil, err
		}
	}

	if input.Status == "" {
		input.Status = models.StatusPending
	}

	task := &models.GroupTask{
		Name:         input.Name,
		Status:       input.Status,
		Description:  input.Description,
		Deadline:     input.Deadline,
		Category:     input.Category,
		GroupID:      input.GroupID,
		CreatedByID:  input.ActorID,
		AssignedToID: input.AssignedToID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the group tasks visible to the actor, plus the user
// summaries referenced by their creator and assignee fields. An admin sees
// every task in the group; a collaborator sees the union of tasks assigned
// to them and tasks they created. Referenced users that no longer resolve
// are absent from the map rather than failing the listing.
func (s *GroupTaskService) ListTasks(groupID, actorID uint64) ([]models.GroupTask, map[uint64]models.User, error) {
	member, err := s.requireMember(groupID, actorID)
	if err != nil {
		return nil, nil, err
	}

	var tasks []models.GroupTask
	if member.Role == models.GroupRoleAdmin {
		tasks, err = s.taskRepo.ListByGroup(groupID)
	} else {
		tasks, err = s.taskRepo.ListVisibleTo(groupID, actorID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	users, err := s.resolveTaskUsers(tasks)
	if err != nil {
		return nil, nil, err
	}

	return tasks, users, nil
}

// UpdateGroupTaskInput represents input for updating a group task. Nil
// fields are left untouched.
type UpdateGroupTaskInput struct {
	Name          *string
	Status        *string
	Description   *string
	Category      *string
	Deadline      *time.Time
	AssignedToID  *uint64
	ClearAssignee bool
}

// UpdateTask updates a task's fields. Any member of the group may update;
// a newly provided assignee is validated against group membership. The
// completion metadata is never modified here, even when the status is
// rewritten away from completed.
func (s *GroupTaskService) UpdateTask(groupID, taskID, actorID uint64, input UpdateGroupTaskInput) (*models.GroupTask, error) {
	if _, err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByIDInGroup(taskID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.AssignedToID != nil {
		if err := s.requireAssignable(groupID, *input.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = input.AssignedToID
	} else if input.ClearAssignee {
		task.AssignedToID = nil
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

// CompleteTask marks a task completed on behalf of the actor: the status is
// forced to completed and the completion metadata records who and when.
// Re-completing is allowed and overwrites both fields.
func (s *GroupTaskService) CompleteTask(groupID, taskID, actorID uint64) (*models.GroupTask, error) {
	if _, err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByIDInGroup(taskID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	now := time.Now()
	task.Status = models.StatusCompleted
	task.CompletedByID = &actorID
	task.CompletedAt = &now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// requireMember verifies the group exists and the actor belongs to it.
func (s *GroupTaskService) requireMember(groupID, actorID uint64) (*models.Collaborator, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	member, err := s.groupRepo.FindMember(groupID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotGroupMember
		}
		return nil, fmt.Errorf("failed to verify group membership: %w", err)
	}

	return member, nil
}

// requireAssignable verifies the assignee holds a membership row in the group.
func (s *GroupTaskService) requireAssignable(groupID, userID uint64) error {
	if _, err := s.groupRepo.FindMember(groupID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to verify assignee membership: %w", err)
	}
	return nil
}

// resolveTaskUsers batch-resolves the user IDs referenced by a task list.
func (s *GroupTaskService) resolveTaskUsers(tasks []models.GroupTask) (map[uint64]models.User, error) {
	ids := make([]uint64, 0, len(tasks)*2)
	seen := make(map[uint64]struct{}, len(tasks)*2)

	add := func(id uint64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, t := range tasks {
		add(t.CreatedByID)
		if t.AssignedToID != nil {
			add(*t.AssignedToID)
		}
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task users: %w", err)
	}

	byID := make(map[uint64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	return byID, nil
}
