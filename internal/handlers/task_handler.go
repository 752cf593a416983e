package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/services"
)

// TaskHandler handles the ownership-scoped task endpoints.
type TaskHandler struct {
	tasks services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks services.TaskServicer) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskRequest represents the task creation payload. Only the title is
// mandatory; everything else falls back to the documented defaults.
type CreateTaskRequest struct {
	Title       string           `json:"title" form:"title" binding:"required"`
	Description *string          `json:"description" form:"description"`
	Status      *string          `json:"status" form:"status" binding:"omitempty,task_status"`
	Priority    *int             `json:"priority" form:"priority"`
	Deadline    *string          `json:"deadline" form:"deadline"`
	CategoryID  OptUint          `json:"categoryId" form:"categoryId"`
	Category    *json.RawMessage `json:"category" form:"-"`
}

// UpdateTaskRequest represents the partial task update payload. Absent
// fields keep their stored values.
type UpdateTaskRequest struct {
	ID          uint             `json:"id" form:"id"`
	Title       *string          `json:"title" form:"title"`
	Description *string          `json:"description" form:"description"`
	Status      *string          `json:"status" form:"status" binding:"omitempty,task_status"`
	Priority    *int             `json:"priority" form:"priority"`
	Deadline    *string          `json:"deadline" form:"deadline"`
	CategoryID  OptUint          `json:"categoryId" form:"categoryId"`
	Category    *json.RawMessage `json:"category" form:"-"`
}

// DeleteTaskRequest carries the id of the task to delete.
type DeleteTaskRequest struct {
	ID uint `json:"id" form:"id"`
}

// List returns the authenticated user's tasks
// @Summary     List tasks
// @Description Return all tasks of the logged-in user, newest first
// @Tags        tasks
// @Produce     json
// @Success     200 {array} services.TaskView "Tasks"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tasks, err := h.tasks.ListTasks(identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, tasks)
}

// Create creates a task
// @Summary     Create a task
// @Description Create a task owned by the logged-in user
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       request body CreateTaskRequest true "Task data"
// @Success     201 {object} services.TaskView "Created task"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /tasks/create [post]
func (h *TaskHandler) Create(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaskRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.Category != nil {
		respondWithError(c, apperrors.Field("category", "Send categoryId instead of an embedded category"))
		return
	}

	task, err := h.tasks.CreateTask(identity.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		CategoryID:  req.CategoryID.Ptr(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, task)
}

// Update applies a partial task update
// @Summary     Update a task
// @Description Apply a partial update to a task owned by the logged-in user
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       request body UpdateTaskRequest true "Fields to change"
// @Success     200 {object} services.TaskView "Updated task"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Failure     404 {object} map[string]interface{} "Task not found"
// @Router      /tasks/update [post]
func (h *TaskHandler) Update(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID == 0 {
		respondWithError(c, apperrors.Field("id", "Missing id"))
		return
	}
	if req.Category != nil {
		respondWithError(c, apperrors.Field("category", "Send categoryId instead of an embedded category"))
		return
	}

	task, err := h.tasks.UpdateTask(identity.ID, req.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Category: services.CategoryPatch{
			Set: req.CategoryID.Set,
			ID:  req.CategoryID.Ptr(),
		},
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, task)
}

// Delete removes a task
// @Summary     Delete a task
// @Description Delete a task owned by the logged-in user
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       request body DeleteTaskRequest true "Task id"
// @Success     200 {object} map[string]interface{} "Deleted"
// @Failure     400 {object} map[string]interface{} "Missing id"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Failure     404 {object} map[string]interface{} "Task not found"
// @Router      /tasks/delete [post]
func (h *TaskHandler) Delete(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteTaskRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID == 0 {
		respondWithError(c, apperrors.Field("id", "Missing id"))
		return
	}

	if err := h.tasks.DeleteTask(identity.ID, req.ID); err != nil {
		respondWithError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Task deleted")
}
