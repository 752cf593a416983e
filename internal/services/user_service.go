package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "taskdeck/internal/errors"
	"taskdeck/internal/models"
	"taskdeck/internal/validator"
)

// userService handles account-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsStudent bool
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsStudent *bool
}

// Register validates the input and creates a new account with a bcrypt
// password hash. A duplicate email surfaces as a field error, not a server
// failure.
func (s *userService) Register(in RegisterInput) (*models.User, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)

	fields := make(map[string]string)
	if firstName == "" {
		fields["firstName"] = "First name is required"
	}
	if lastName == "" {
		fields["lastName"] = "Last name is required"
	}
	switch {
	case email == "":
		fields["email"] = "Email is required"
	case !validator.EmailShape(email):
		fields["email"] = "Invalid email"
	}
	if len(in.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.Field("email", "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hash),
		IsStudent: in.IsStudent,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Field("email", "Email already registered")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// Authenticate verifies the credentials against the stored hash. Field
// validation happens before any store access; after that, a missing account
// and a wrong password return the identical generic error so callers cannot
// tell which one applied.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	fields := make(map[string]string)
	switch {
	case email == "":
		fields["email"] = "Email is required"
	case !validator.EmailShape(email):
		fields["email"] = "Invalid email"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID retrieves a user by primary key.
func (s *userService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateProfile applies the supplied fields to the caller's own account,
// re-running the registration validation rules on each one.
func (s *userService) UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	updates := make(map[string]interface{})

	if in.FirstName != nil {
		firstName := strings.TrimSpace(*in.FirstName)
		if firstName == "" {
			fields["firstName"] = "First name is required"
		} else {
			updates["first_name"] = firstName
		}
	}
	if in.LastName != nil {
		lastName := strings.TrimSpace(*in.LastName)
		if lastName == "" {
			fields["lastName"] = "Last name is required"
		} else {
			updates["last_name"] = lastName
		}
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		switch {
		case email == "":
			fields["email"] = "Email is required"
		case !validator.EmailShape(email):
			fields["email"] = "Invalid email"
		default:
			updates["email"] = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 6 {
			fields["password"] = "Password must be at least 6 characters"
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			updates["password"] = string(hash)
		}
	}
	if in.IsStudent != nil {
		updates["is_student"] = *in.IsStudent
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if email, ok := updates["email"]; ok && email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, userID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.Field("email", "Email already registered")
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Field("email", "Email already registered")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return user, nil
}
