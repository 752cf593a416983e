package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/models"
	"taskdeck/internal/validator"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the user's categories ordered by name.
func (s *categoryService) ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategory retrieves one category under the ownership scope. A category
// owned by another user responds exactly like a missing one.
func (s *categoryService) GetCategory(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory validates and persists a new category. An empty color is
// stored as null.
func (s *categoryService) CreateCategory(userID uint, name string, color *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Field("name", "Name is required")
	}

	color, err := normalizeColor(color)
	if err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, Name: name, Color: color}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory applies the supplied fields. An absent color keeps the
// stored value; an empty color string clears it.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name, color *string) (*models.Category, error) {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.Field("name", "Name is required")
		}
		category.Name = trimmed
	}
	if color != nil {
		normalized, err := normalizeColor(color)
		if err != nil {
			return nil, err
		}
		category.Color = normalized
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes the category. Tasks pointing at it keep their
// category_id; task serialization degrades the dangling reference to null.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeColor trims color input and maps the empty string to null. Any
// other value must be a #RRGGBB hex color.
func normalizeColor(color *string) (*string, error) {
	if color == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*color)
	if trimmed == "" {
		return nil, nil
	}
	if !validator.HexColor(trimmed) {
		return nil, apperrors.Field("color", "Color must be hex like #RRGGBB")
	}
	return &trimmed, nil
}
