package handlers

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/logger"
	"taskdeck/internal/middleware"
	"taskdeck/internal/models"
)

// currentIdentity extracts the authenticated identity placed in the context
// by the session gate.
func currentIdentity(c *gin.Context) (models.Identity, error) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		return models.Identity{}, apperrors.ErrUnauthorized
	}
	return v.(models.Identity), nil
}

// respondData writes the ok envelope with a data payload.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "ok", "data": data})
}

// respondMessage writes the ok envelope with a human-readable message.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "ok", "message": message})
}

// respondWithError renders any error into the error envelope. AppErrors keep
// their status and either a field-error map or a message; anything else is
// logged and becomes a generic 500.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		if appErr.Fields != nil {
			c.JSON(appErr.StatusCode, gin.H{"status": "error", "errors": appErr.Fields})
			return
		}
		c.JSON(appErr.StatusCode, gin.H{"status": "error", "message": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode,
		gin.H{"status": "error", "message": apperrors.ErrInternalServer.Message})
}

// bindBody binds a JSON or form-encoded body into req, depending on the
// request's content type, and converts binding failures into the field-error
// shape. An undecodable body maps to a single "body" error.
func bindBody(c *gin.Context, req interface{}) error {
	err := c.ShouldBind(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		return apperrors.Validation(fields)
	}
	return apperrors.Field("body", "Invalid JSON")
}

// validationMessage maps a validator violation to the client-facing message
// for its field.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldLabel(fe.Field()) + " is required"
	case "min":
		return fieldLabel(fe.Field()) + " must be at least " + fe.Param() + " characters"
	case "email_shape":
		return "Invalid email"
	case "hex_color":
		return "Color must be hex like #RRGGBB"
	case "task_status":
		return "Invalid status value"
	case "language":
		return "Invalid language"
	case "theme":
		return "Invalid theme"
	case "task_filter":
		return "Invalid task filter"
	case "task_sort":
		return "Invalid task sort"
	}
	return "Invalid " + fe.Field()
}

// fieldLabel turns a camelCase JSON field name into a sentence-style label,
// e.g. "firstName" -> "First name".
func fieldLabel(name string) string {
	if name == "" {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
