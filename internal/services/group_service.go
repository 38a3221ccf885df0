package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrInvalidGroupName    = errors.New("group name cannot be empty")
	ErrNotGroupAdmin       = errors.New("only the group admin can add collaborators")
	ErrAlreadyCollaborator = errors.New("user is already a collaborator of this group")
	ErrFailedToCreateGroup = errors.New("failed to create group")
	ErrFailedToAddAdminRow = errors.New("failed to add admin membership to group")
)

// GroupService provides business logic for groups and their memberships.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroupInput represents parameters to create a new group.
type CreateGroupInput struct {
	Name    string
	OwnerID uint64
}

// CreateGroup creates a group whose creator becomes its sole admin. The
// group and its admin collaborator row are written in one transaction so
// neither can exist without the other.
func (s *GroupService) CreateGroup(input CreateGroupInput) (*models.Group, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidGroupName
	}

	group := &models.Group{
		Name:    input.Name,
		AdminID: input.OwnerID,
	}

	admin := &models.Collaborator{
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.CreateWithAdmin(group, admin); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateGroup):
			return nil, ErrFailedToCreateGroup
		case errors.Is(err, repository.ErrCreateAdminCollaborator):
			return nil, ErrFailedToAddAdminRow
		default:
			return nil, fmt.Errorf("failed to create group: %w", err)
		}
	}

	return group, nil
}

// AddCollaboratorInput represents parameters to invite a user into a group.
type AddCollaboratorInput struct {
	GroupID uint64
	ActorID uint64
	Email   string
}

// AddCollaborator adds the user identified by email as a collaborator.
// Only an admin member of the group may invite, and a user can hold at most
// one membership row per group.
func (s *GroupService) AddCollaborator(input AddCollaboratorInput) (*models.Collaborator, error) {
	actor, err := s.groupRepo.FindMember(input.GroupID, input.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotGroupAdmin
		}
		return nil, fmt.Errorf("failed to verify group membership: %w", err)
	}
	if actor.Role != models.GroupRoleAdmin {
		return nil, ErrNotGroupAdmin
	}

	target, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.groupRepo.FindMember(input.GroupID, target.ID); err == nil {
		return nil, ErrAlreadyCollaborator
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	collab := &models.Collaborator{
		GroupID:  input.GroupID,
		UserID:   target.ID,
		Role:     models.GroupRoleCollaborator,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.AddCollaborator(collab); err != nil {
		// The composite unique index catches the race where two identical
		// invites pass the existence check concurrently.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCollaborator
		}
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	return collab, nil
}

// ListCollaborators returns the members of a group with their users. The
// group must exist; callers do not have to be members to see the roster.
func (s *GroupService) ListCollaborators(groupID uint64) ([]models.Collaborator, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}

	return members, nil
}

// ListGroupsForUser returns the caller's memberships together with a
// summary of each group's admin. Admin users that no longer resolve are
// simply left out of the map.
func (s *GroupService) ListGroupsForUser(userID uint64) ([]models.Collaborator, map[uint64]models.User, error) {
	memberships, err := s.groupRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list groups: %w", err)
	}

	adminIDs := make([]uint64, 0, len(memberships))
	seen := make(map[uint64]struct{}, len(memberships))
	for _, m := range memberships {
		id := m.Group.AdminID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		adminIDs = append(adminIDs, id)
	}

	admins, err := s.userRepo.FindByIDs(adminIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve group admins: %w", err)
	}

	adminsByID := make(map[uint64]models.User, len(admins))
	for _, u := range admins {
		adminsByID[u.ID] = u
	}

	return memberships, adminsByID, nil
}

// ResolveUsers batch-resolves user IDs to a map keyed by ID. Missing IDs
// are simply absent from the result.
func (s *GroupService) ResolveUsers(ids []uint64) (map[uint64]models.User, error) {
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}

	byID := make(map[uint64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
