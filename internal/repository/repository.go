package repository

import (
	"github.com/taskapp/taskapp-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs finds all users among the given IDs in a single query
	FindByIDs(ids []uint64) ([]models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// GroupRepository defines the interface for group and membership data access
type GroupRepository interface {
	// CreateWithAdmin creates a group and its admin collaborator row
	// within a single transaction.
	CreateWithAdmin(group *models.Group, admin *models.Collaborator) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// AddCollaborator inserts a membership row
	AddCollaborator(collab *models.Collaborator) error

	// FindMember finds the membership row for a (group, user) pair
	FindMember(groupID, userID uint64) (*models.Collaborator, error)

	// ListMembers lists all collaborators of a group with their users
	ListMembers(groupID uint64) ([]models.Collaborator, error)

	// ListMembershipsByUserID lists all groups a user belongs to
	ListMembershipsByUserID(userID uint64) ([]models.Collaborator, error)
}

// PersonalTaskRepository defines the interface for personal task data access.
// Every lookup is scoped by owner; there is no unscoped read path.
type PersonalTaskRepository interface {
	// Create creates a new personal task
	Create(task *models.PersonalTask) error

	// ListByOwner lists the owner's tasks
	ListByOwner(ownerID uint64) ([]models.PersonalTask, error)

	// FindByIDForOwner finds a task by ID within the owner's tasks
	FindByIDForOwner(id, ownerID uint64) (*models.PersonalTask, error)

	// Update updates a personal task
	Update(task *models.PersonalTask) error
}

// GroupTaskRepository defines the interface for group task data access
type GroupTaskRepository interface {
	// Create creates a new group task
	Create(task *models.GroupTask) error

	// FindByIDInGroup finds a task by ID scoped to a group
	FindByIDInGroup(id, groupID uint64) (*models.GroupTask, error)

	// ListByGroup lists every task in a group
	ListByGroup(groupID uint64) ([]models.GroupTask, error)

	// ListVisibleTo lists the tasks in a group that a non-admin member may
	// see: tasks assigned to them or created by them.
	ListVisibleTo(groupID, userID uint64) ([]models.GroupTask, error)

	// Update updates a group task
	Update(task *models.GroupTask) error
}
