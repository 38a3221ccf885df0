package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/dto"
	apierrors "github.com/taskapp/taskapp-api/internal/errors"
	"github.com/taskapp/taskapp-api/internal/middleware"
	"github.com/taskapp/taskapp-api/internal/models"
	"github.com/taskapp/taskapp-api/internal/services"
)

// GroupTaskHandler serves the shared-task endpoints of a group.
type GroupTaskHandler struct {
	taskService  *services.GroupTaskService
	groupService *services.GroupService
}

// NewGroupTaskHandler creates a new GroupTaskHandler.
func NewGroupTaskHandler(taskService *services.GroupTaskService, groupService *services.GroupService) *GroupTaskHandler {
	return &GroupTaskHandler{
		taskService:  taskService,
		groupService: groupService,
	}
}

// CreateTask creates a task in the group.
func (h *GroupTaskHandler) CreateTask(c *gin.Context) {
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

	type CreateTaskRequest struct {
		Name        string     `json:"name" binding:"required"`
		Status      string     `json:"status"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		Category    string     `json:"category"`
		AssignedTo  *uint64    `json:"assigned_to"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateGroupTaskInput{
		GroupID:      groupID,
		ActorID:      userID,
		Name:         req.Name,
		Status:       req.Status,
		Description:  req.Description,
		Deadline:     req.Deadline,
		Category:     req.Category,
		AssignedToID: req.AssignedTo,
	})
	if err != nil {
		respondGroupTaskError(c, err)
		return
	}

	users, err := h.resolveTaskUsers(c, task.CreatedByID, task.AssignedToID)
	if err != nil {
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupTaskDTO(*task, users))
}

// ListTasks returns the group tasks visible to the caller.
func (h *GroupTaskHandler) ListTasks(c *gin.Context) {
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

	tasks, users, err := h.taskService.ListTasks(groupID, userID)
	if err != nil {
		respondGroupTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupTaskDTOs(tasks, users))
}

// UpdateTask updates the fields of a task. Only provided fields change;
// sending "assigned_to": null clears the assignee.
func (h *GroupTaskHandler) UpdateTask(c *gin.Context) {
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
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateGroupTaskInput
	if v, ok := rawReq["name"]; ok {
		if s, ok := v.(string); ok {
			input.Name = &s
		}
	}
	if v, ok := rawReq["status"]; ok {
		if s, ok := v.(string); ok {
			input.Status = &s
		}
	}
	if v, ok := rawReq["description"]; ok {
		if s, ok := v.(string); ok {
			input.Description = &s
		}
	}
	if v, ok := rawReq["category"]; ok {
		if s, ok := v.(string); ok {
			input.Category = &s
		}
	}
	if v, ok := rawReq["deadline"]; ok && v != nil {
		if s, ok := v.(string); ok {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid deadline")
				return
			}
			input.Deadline = &parsed
		}
	}
	if v, ok := rawReq["assigned_to"]; ok {
		// assigned_to was provided (might be null)
		if v == nil {
			input.ClearAssignee = true
		} else if f, ok := v.(float64); ok {
			id := uint64(f)
			input.AssignedToID = &id
		} else {
			apierrors.BadRequest(c, "Invalid assigned_to")
			return
		}
	}

	task, err := h.taskService.UpdateTask(groupID, taskID, userID, input)
	if err != nil {
		respondGroupTaskError(c, err)
		return
	}

	users, err := h.resolveTaskUsers(c, task.CreatedByID, task.AssignedToID)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupTaskDTO(*task, users))
}

// CompleteTask marks a task completed by the caller.
func (h *GroupTaskHandler) CompleteTask(c *gin.Context) {
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
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.CompleteTask(groupID, taskID, userID)
	if err != nil {
		respondGroupTaskError(c, err)
		return
	}

	users, err := h.resolveTaskUsers(c, task.CreatedByID, task.AssignedToID)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupTaskDTO(*task, users))
}

// resolveTaskUsers resolves the summaries for a single task's references.
// Writes the error response itself so callers just return on error.
func (h *GroupTaskHandler) resolveTaskUsers(c *gin.Context, createdByID uint64, assignedToID *uint64) (map[uint64]models.User, error) {
	ids := []uint64{createdByID}
	if assignedToID != nil && *assignedToID != createdByID {
		ids = append(ids, *assignedToID)
	}

	users, err := h.groupService.ResolveUsers(ids)
	if err != nil {
		apierrors.InternalError(c, "Failed to resolve task users")
		return nil, err
	}

	return users, nil
}

func respondGroupTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrGroupTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotGroupMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidAssignee):
		apierrors.InvalidAssignment(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
