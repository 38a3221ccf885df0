package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/constants"
	"github.com/taskapp/taskapp-api/internal/dto"
	apierrors "github.com/taskapp/taskapp-api/internal/errors"
	"github.com/taskapp/taskapp-api/internal/middleware"
	"github.com/taskapp/taskapp-api/internal/services"
)

// PersonalTaskHandler serves the caller's private tasks.
type PersonalTaskHandler struct {
	taskService *services.PersonalTaskService
	aiService   *services.AIService
}

// NewPersonalTaskHandler creates a new PersonalTaskHandler.
func NewPersonalTaskHandler(taskService *services.PersonalTaskService, aiService *services.AIService) *PersonalTaskHandler {
	return &PersonalTaskHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// ListTasks returns the caller's tasks.
func (h *PersonalTaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonalTaskDTOs(tasks))
}

// CreateTask creates a task owned by the caller.
func (h *PersonalTaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Name        string     `json:"name" binding:"required"`
		Status      string     `json:"status"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		Category    string     `json:"category"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreatePersonalTaskInput{
		OwnerID:     userID,
		Name:        req.Name,
		Status:      req.Status,
		Description: req.Description,
		Deadline:    req.Deadline,
		Category:    req.Category,
	})
	if err != nil {
		respondPersonalTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPersonalTaskDTO(*task))
}

// UpdateTask updates one of the caller's tasks. The lookup is owner-scoped,
// so another user's task ID answers 404.
func (h *PersonalTaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
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

	var input services.UpdatePersonalTaskInput
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

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondPersonalTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonalTaskDTO(*task))
}

// GenerateTasks drafts personal tasks from free text using the AI service.
func (h *PersonalTaskHandler) GenerateTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	ctx := context.Background()
	generated, err := h.aiService.GenerateTasksFromText(ctx, req.Text)
	if err != nil {
		apierrors.InternalError(c, fmt.Sprintf("Failed to generate tasks: %v", err))
		return
	}

	if len(generated) > constants.MaxAIGeneratedTasks {
		generated = generated[:constants.MaxAIGeneratedTasks]
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": generated,
	})
}

func respondPersonalTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPersonalTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
