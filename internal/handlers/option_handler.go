package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/services"
)

// OptionHandler handles the per-user preference endpoints.
type OptionHandler struct {
	options services.OptionServicer
}

// NewOptionHandler creates a new OptionHandler.
func NewOptionHandler(options services.OptionServicer) *OptionHandler {
	return &OptionHandler{options: options}
}

// UpdateOptionsRequest represents the partial preferences update payload.
// Absent or empty fields keep their stored values.
type UpdateOptionsRequest struct {
	Language   *string `json:"language" form:"language" binding:"omitempty,language"`
	Theme      *string `json:"theme" form:"theme" binding:"omitempty,theme"`
	TaskFilter *string `json:"taskFilter" form:"taskFilter" binding:"omitempty,task_filter"`
	TaskSort   *string `json:"taskSort" form:"taskSort" binding:"omitempty,task_sort"`
}

// Get returns the user's preferences
// @Summary     Get preferences
// @Description Return the logged-in user's preferences, creating the default row on first access
// @Tags        options
// @Produce     json
// @Success     200 {object} models.Option "Preferences"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /options [get]
func (h *OptionHandler) Get(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	option, err := h.options.GetOrCreate(identity.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, option)
}

// Update applies a partial preferences update
// @Summary     Update preferences
// @Description Change any subset of the logged-in user's preferences; invalid values reject the whole update
// @Tags        options
// @Accept      json
// @Produce     json
// @Param       request body UpdateOptionsRequest true "Preferences to change"
// @Success     200 {object} models.Option "Updated preferences"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /options/update [post]
func (h *OptionHandler) Update(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOptionsRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	option, err := h.options.Update(identity.ID, services.UpdateOptionsInput{
		Language:   req.Language,
		Theme:      req.Theme,
		TaskFilter: req.TaskFilter,
		TaskSort:   req.TaskSort,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, option)
}
