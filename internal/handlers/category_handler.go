package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/services"
)

// CategoryHandler handles the ownership-scoped category endpoints.
type CategoryHandler struct {
	categories services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategoryRequest represents the category creation payload.
type CreateCategoryRequest struct {
	Name  string  `json:"name" form:"name" binding:"required"`
	Color *string `json:"color" form:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the partial category update payload. An
// empty color is allowed through the binder: it means "clear the color".
type UpdateCategoryRequest struct {
	ID    uint    `json:"id" form:"id"`
	Name  *string `json:"name" form:"name"`
	Color *string `json:"color" form:"color" binding:"omitempty,hex_color"`
}

// DeleteCategoryRequest carries the id of the category to delete.
type DeleteCategoryRequest struct {
	ID uint `json:"id" form:"id"`
}

// List returns the user's categories
// @Summary     List categories
// @Description Return the logged-in user's categories sorted by name
// @Tags        categories
// @Produce     json
// @Success     200 {array} models.Category "Categories"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categories.ListCategories(identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, categories)
}

// Detail returns one category by the id query parameter
// @Summary     Category detail
// @Description Return one category owned by the logged-in user
// @Tags        categories
// @Produce     json
// @Param       id query int true "Category id"
// @Success     200 {object} models.Category "Category"
// @Failure     400 {object} map[string]interface{} "Missing or invalid id"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Failure     404 {object} map[string]interface{} "Not found"
// @Router      /categories/detail [get]
func (h *CategoryHandler) Detail(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		respondWithError(c, apperrors.Field("id", "Missing id"))
		return
	}

	category, err := h.categories.GetCategory(identity.ID, uint(id))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, category)
}

// Create creates a category
// @Summary     Create a category
// @Description Create a category owned by the logged-in user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category data"
// @Success     201 {object} models.Category "Created category"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /categories/create [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categories.CreateCategory(identity.ID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, category)
}

// Update applies a partial category update
// @Summary     Update a category
// @Description Rename or recolor a category owned by the logged-in user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Failure     404 {object} map[string]interface{} "Not found"
// @Router      /categories/update [post]
func (h *CategoryHandler) Update(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID == 0 {
		respondWithError(c, apperrors.Field("id", "Missing id"))
		return
	}

	category, err := h.categories.UpdateCategory(identity.ID, req.ID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, category)
}

// Delete removes a category
// @Summary     Delete a category
// @Description Delete a category owned by the logged-in user; its tasks keep running uncategorized
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body DeleteCategoryRequest true "Category id"
// @Success     200 {object} map[string]interface{} "Deleted"
// @Failure     400 {object} map[string]interface{} "Missing id"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Failure     404 {object} map[string]interface{} "Not found"
// @Router      /categories/delete [post]
func (h *CategoryHandler) Delete(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteCategoryRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	if req.ID == 0 {
		respondWithError(c, apperrors.Field("id", "Missing id"))
		return
	}

	if err := h.categories.DeleteCategory(identity.ID, req.ID); err != nil {
		respondWithError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted")
}
