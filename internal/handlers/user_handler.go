package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

// UserHandler handles profile updates for the authenticated user.
type UserHandler struct {
	users services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServicer) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateProfileRequest represents the partial profile update payload. A
// present password is re-hashed; absent fields keep their stored values.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" form:"firstName"`
	LastName  *string `json:"lastName" form:"lastName"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email_shape"`
	Password  *string `json:"password" form:"password" binding:"omitempty,min=6"`
	IsStudent *bool   `json:"isStudent" form:"isStudent"`
}

// Update applies a partial profile update
// @Summary     Update profile
// @Description Change any subset of the logged-in user's profile fields
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body UpdateProfileRequest true "Fields to change"
// @Success     200 {object} models.Identity "Updated identity"
// @Failure     400 {object} map[string]interface{} "Validation errors"
// @Failure     401 {object} map[string]interface{} "Unauthorized"
// @Router      /users/update [post]
func (h *UserHandler) Update(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(identity.ID, services.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsStudent: req.IsStudent,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, models.NewIdentity(user))
}
