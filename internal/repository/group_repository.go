package repository

import (
	"errors"
	"fmt"

	"github.com/taskapp/taskapp-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateGroup is returned when creating a group fails inside the creation transaction.
	ErrCreateGroup = errors.New("group repository: create group failed")
	// ErrCreateAdminCollaborator is returned when creating the admin membership fails inside the creation transaction.
	ErrCreateAdminCollaborator = errors.New("group repository: create admin collaborator failed")
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithAdmin creates a group and its admin collaborator row atomically.
// A group must never exist without its admin membership.
func (r *GormGroupRepository) CreateWithAdmin(group *models.Group, admin *models.Collaborator) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroup, err)
		}

		admin.GroupID = group.ID
		admin.UserID = group.AdminID
		admin.Role = models.GroupRoleAdmin

		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAdminCollaborator, err)
		}

		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// AddCollaborator inserts a membership row
func (r *GormGroupRepository) AddCollaborator(collab *models.Collaborator) error {
	return r.db.Create(collab).Error
}

// FindMember finds the membership row for a (group, user) pair
func (r *GormGroupRepository) FindMember(groupID, userID uint64) (*models.Collaborator, error) {
	var collab models.Collaborator
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// ListMembers lists all collaborators of a group with their users
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.Collaborator, error) {
	var members []models.Collaborator
	if err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Order("id").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all groups a user belongs to
func (r *GormGroupRepository) ListMembershipsByUserID(userID uint64) ([]models.Collaborator, error) {
	var memberships []models.Collaborator
	if err := r.db.Preload("Group").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
