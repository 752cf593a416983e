package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"taskdeck/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", nextID()),
		Email:     email,
		Password:  string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.Category {
	t.Helper()

	color := "#336699"
	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Color:  &color,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTask creates a pending task owned by the given user.
func CreateTestTask(t *testing.T, db *gorm.DB, userID uint) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID:   userID,
		Title:    fmt.Sprintf("Test Task %d", nextID()),
		Status:   models.TaskStatusPending,
		Priority: models.DefaultTaskPriority,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestTaskInCategory creates a pending task assigned to a category.
func CreateTestTaskInCategory(t *testing.T, db *gorm.DB, userID, categoryID uint) *models.Task {
	t.Helper()

	task := CreateTestTask(t, db, userID)
	if err := db.Model(task).Update("category_id", categoryID).Error; err != nil {
		t.Fatalf("failed to assign test task to category: %v", err)
	}
	task.CategoryID = &categoryID
	return task
}
