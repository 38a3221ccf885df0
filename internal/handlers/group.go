package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/dto"
	apierrors "github.com/taskapp/taskapp-api/internal/errors"
	"github.com/taskapp/taskapp-api/internal/middleware"
	"github.com/taskapp/taskapp-api/internal/services"
)

// GroupHandler serves group and membership endpoints.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// CreateGroup creates a group with the caller as its admin.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGroupRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(services.CreateGroupInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group))
}

// ListGroups returns the caller's memberships with group and admin summaries.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, admins, err := h.groupService.ListGroupsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch groups")
		return
	}

	groups := make([]dto.MembershipDTO, len(memberships))
	for i, m := range memberships {
		groups[i] = dto.ToMembershipDTO(m, admins)
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
	})
}

// AddCollaborator invites a user into the group by email. Admin only.
func (h *GroupHandler) AddCollaborator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type AddCollaboratorRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	collab, err := h.groupService.AddCollaborator(services.AddCollaboratorInput{
		GroupID: groupID,
		ActorID: userID,
		Email:   req.Email,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollaboratorDTO(*collab))
}

// ListCollaborators returns the group's roster joined with user summaries.
func (h *GroupHandler) ListCollaborators(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	members, err := h.groupService.ListCollaborators(groupID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	collaborators := make([]dto.CollaboratorDTO, len(members))
	for i, m := range members {
		collaborators[i] = dto.ToCollaboratorDTO(m)
	}

	c.JSON(http.StatusOK, collaborators)
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidGroupName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotGroupAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyCollaborator):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrFailedToCreateGroup),
		errors.Is(err, services.ErrFailedToAddAdminRow):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
