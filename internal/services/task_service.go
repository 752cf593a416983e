package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/models"
)

// deadlineLayouts are the accepted free-text deadline formats, tried in
// order.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// taskService handles task-related business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// CategoryRef is the embedded category form tasks serialize with: the full
// object or null, never a bare id.
type CategoryRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// TaskView is the serialized shape of a task. The owner id is deliberately
// absent; ownership is implied by the authenticated session.
type TaskView struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    int               `json:"priority"`
	Deadline    *time.Time        `json:"deadline"`
	Category    *CategoryRef      `json:"category"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CreateTaskInput carries the fields of a create request. Nil optional
// fields take their defaults.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *string
	Priority    *int
	Deadline    *string
	CategoryID  *uint
}

// CategoryPatch distinguishes "leave the category alone" (Set false) from
// "clear it" (Set true, ID nil) and "point it at ID" in partial updates.
type CategoryPatch struct {
	Set bool
	ID  *uint
}

// UpdateTaskInput carries a partial task update. Nil fields keep their
// stored value; an empty Deadline string clears the deadline.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	Deadline    *string
	Category    CategoryPatch
}

// ListTasks returns the user's tasks, newest first.
func (s *taskService) ListTasks(userID uint) ([]TaskView, error) {
	var tasks []models.Task
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.serializeAll(userID, tasks)
}

// CreateTask validates the input and persists a new task for the user.
func (s *taskService) CreateTask(userID uint, in CreateTaskInput) (*TaskView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.Field("title", "Title is required")
	}

	status := models.TaskStatusPending
	if in.Status != nil {
		status = models.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, apperrors.Field("status", "Invalid status value")
		}
	}

	priority := models.DefaultTaskPriority
	if in.Priority != nil {
		priority = *in.Priority
	}

	deadline, err := parseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategoryID(userID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    deadline,
		CategoryID:  categoryID,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.serialize(userID, task)
}

// UpdateTask loads the task under the ownership scope and applies only the
// fields present in the input.
func (s *taskService) UpdateTask(userID, taskID uint, in UpdateTaskInput) (*TaskView, error) {
	task, err := s.getOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.Field("title", "Title is required")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.Status != nil {
		status := models.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, apperrors.Field("status", "Invalid status value")
		}
		task.Status = status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Deadline != nil {
		deadline, err := parseDeadline(in.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = deadline
	}
	if in.Category.Set {
		categoryID, err := s.resolveCategoryID(userID, in.Category.ID)
		if err != nil {
			return nil, err
		}
		task.CategoryID = categoryID
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.serialize(userID, task)
}

// DeleteTask removes the task if it exists and belongs to the user.
func (s *taskService) DeleteTask(userID, taskID uint) error {
	task, err := s.getOwned(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwned fetches a task scoped to its owner. A foreign or missing task id
// produces the same not-found error.
func (s *taskService) getOwned(userID, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

// resolveCategoryID validates that a non-nil, non-zero category id references
// a category owned by the user. A zero id clears the reference.
func (s *taskService) resolveCategoryID(userID uint, id *uint) (*uint, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", *id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Field("categoryId", "Category not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return id, nil
}

// serialize builds the outward task shape, resolving the category reference
// with a live lookup. A reference to a category deleted since the task was
// written degrades to null instead of erroring.
func (s *taskService) serialize(userID uint, task *models.Task) (*TaskView, error) {
	view := &TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.CategoryID == nil {
		return view, nil
	}

	var category models.Category
	err := s.db.Where("id = ? AND user_id = ?", *task.CategoryID, userID).First(&category).Error
	switch {
	case err == nil:
		view.Category = &CategoryRef{ID: category.ID, Name: category.Name, Color: category.Color}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Dangling reference, category was deleted.
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return view, nil
}

// serializeAll resolves category references for a whole list with one query.
func (s *taskService) serializeAll(userID uint, tasks []models.Task) ([]TaskView, error) {
	ids := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		if task.CategoryID != nil {
			ids = append(ids, *task.CategoryID)
		}
	}

	refs := make(map[uint]*CategoryRef, len(ids))
	if len(ids) > 0 {
		var categories []models.Category
		if err := s.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&categories).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range categories {
			c := categories[i]
			refs[c.ID] = &CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
		}
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		view := TaskView{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			Deadline:    task.Deadline,
			CreatedAt:   task.CreatedAt,
			UpdatedAt:   task.UpdatedAt,
		}
		if task.CategoryID != nil {
			view.Category = refs[*task.CategoryID]
		}
		views = append(views, view)
	}
	return views, nil
}

// parseDeadline turns free-text deadline input into a timestamp. Nil and
// empty input mean "no deadline"; text that matches none of the accepted
// layouts is a validation error, never a silent drop.
func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return &ts, nil
		}
	}
	return nil, apperrors.Field("deadline", "Invalid deadline format")
}
