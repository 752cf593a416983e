package services

import (
	"taskdeck/internal/models"
)

// UserServicer defines the contract for account registration, credential
// verification, and profile updates.
type UserServicer interface {
	Register(in RegisterInput) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, error)
}

// SessionServicer manages the server-side session rows backing cookie
// authentication.
type SessionServicer interface {
	Issue(userID uint) (*models.Session, error)
	Resolve(token string) (*models.Session, *models.User, error)
	Destroy(token string) error
}

// TaskServicer defines the contract for ownership-scoped task CRUD. All
// reads and writes are filtered to the owning user; a task that exists but
// belongs to someone else behaves exactly like a missing one.
type TaskServicer interface {
	ListTasks(userID uint) ([]TaskView, error)
	CreateTask(userID uint, in CreateTaskInput) (*TaskView, error)
	UpdateTask(userID, taskID uint, in UpdateTaskInput) (*TaskView, error)
	DeleteTask(userID, taskID uint) error
}

// CategoryServicer defines the contract for ownership-scoped category CRUD.
type CategoryServicer interface {
	ListCategories(userID uint) ([]models.Category, error)
	GetCategory(userID, categoryID uint) (*models.Category, error)
	CreateCategory(userID uint, name string, color *string) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, color *string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// OptionServicer defines the contract for per-user preference rows.
type OptionServicer interface {
	GetOrCreate(userID uint) (*models.Option, error)
	Update(userID uint, in UpdateOptionsInput) (*models.Option, error)
}
