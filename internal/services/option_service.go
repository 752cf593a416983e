package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/models"
)

// optionService handles per-user preference rows.
type optionService struct {
	db *gorm.DB
}

// NewOptionService creates a new OptionServicer.
func NewOptionService(db *gorm.DB) OptionServicer {
	return &optionService{db: db}
}

// UpdateOptionsInput carries a partial options update. Nil and empty-string
// fields are left untouched.
type UpdateOptionsInput struct {
	Language   *string
	Theme      *string
	TaskFilter *string
	TaskSort   *string
}

// GetOrCreate returns the user's option row, creating it with defaults on
// first access. The unique index on user_id guarantees at most one row even
// when two first reads race.
func (s *optionService) GetOrCreate(userID uint) (*models.Option, error) {
	var option models.Option
	err := s.db.Where("user_id = ?", userID).First(&option).Error
	if err == nil {
		return &option, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created := models.DefaultOption(userID)
	if err := s.db.Create(created).Error; err != nil {
		// Lost the creation race; the winner's row is the one to return.
		var existing models.Option
		if ferr := s.db.Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}

// Update validates every supplied field against its allow-list before
// touching the row, so an invalid value never results in a partial write.
func (s *optionService) Update(userID uint, in UpdateOptionsInput) (*models.Option, error) {
	option, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	updates := make(map[string]interface{})

	if v := present(in.Language); v != nil {
		if !models.ValidLanguage(*v) {
			fields["language"] = "Invalid language"
		} else {
			updates["language"] = *v
		}
	}
	if v := present(in.Theme); v != nil {
		if !models.ValidTheme(*v) {
			fields["theme"] = "Invalid theme"
		} else {
			updates["theme"] = strings.ToLower(*v)
		}
	}
	if v := present(in.TaskFilter); v != nil {
		if !models.ValidTaskFilter(*v) {
			fields["taskFilter"] = "Invalid task filter"
		} else {
			updates["task_filter"] = *v
		}
	}
	if v := present(in.TaskSort); v != nil {
		if !models.ValidTaskSort(*v) {
			fields["taskSort"] = "Invalid task sort"
		} else {
			updates["task_sort"] = *v
		}
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if len(updates) > 0 {
		if err := s.db.Model(option).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return option, nil
}

// present treats nil and empty strings as "field not supplied".
func present(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
