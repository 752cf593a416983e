package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"taskdeck/internal/models"
	"taskdeck/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Register(RegisterInput{
			FirstName: "Jana",
			LastName:  "Novakova",
			Email:     "jana@example.com",
			Password:  "secret123",
			IsStudent: true,
		})
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Password == "secret123" {
			t.Error("password must be stored hashed")
		}
		if !user.IsStudent {
			t.Error("expected isStudent true")
		}
	})

	t.Run("missing_fields_reported_together", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register(RegisterInput{})
		testutil.AssertFieldError(t, err, "firstName")
		testutil.AssertFieldError(t, err, "lastName")
		testutil.AssertFieldError(t, err, "email")
		testutil.AssertFieldError(t, err, "password")
	})

	t.Run("bad_email_shape", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register(RegisterInput{
			FirstName: "Jana",
			LastName:  "Novakova",
			Email:     "not-an-email",
			Password:  "secret123",
		})
		testutil.AssertFieldError(t, err, "email")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register(RegisterInput{
			FirstName: "Jana",
			LastName:  "Novakova",
			Email:     "jana@example.com",
			Password:  "12345",
		})
		testutil.AssertFieldError(t, err, "password")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		in := RegisterInput{
			FirstName: "Jana",
			LastName:  "Novakova",
			Email:     "jana@example.com",
			Password:  "secret123",
		}
		_, err := svc.Register(in)
		testutil.AssertNoError(t, err)

		_, err = svc.Register(in)
		testutil.AssertFieldError(t, err, "email")
	})

	// A concurrent registration can slip past the existence pre-check; the
	// unique index is the backstop, and the store must surface its violation
	// as gorm.ErrDuplicatedKey for Register to map it to a field error.
	t.Run("duplicate_backstop_translates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		dup := &models.User{
			FirstName: "Other",
			LastName:  "Person",
			Email:     user.Email,
			Password:  "irrelevant-hash",
		}
		err := db.Create(dup).Error
		if err == nil {
			t.Fatal("expected the unique email index to reject the insert")
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		got, err := svc.Authenticate(user.Email, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong_password_generic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Authenticate(user.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Authenticate("nobody@example.com", "whatever1")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("missing_fields_validated_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Authenticate("", "")
		testutil.AssertFieldError(t, err, "email")
		testutil.AssertFieldError(t, err, "password")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{FirstName: strPtr("Renamed")})
		testutil.AssertNoError(t, err)

		if updated.FirstName != "Renamed" {
			t.Errorf("expected first name Renamed, got %s", updated.FirstName)
		}
		if updated.Email != user.Email {
			t.Errorf("email should be untouched, got %s", updated.Email)
		}
	})

	t.Run("password_rehash_and_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Password: strPtr("newsecret")})
		testutil.AssertNoError(t, err)

		_, err = svc.Authenticate(user.Email, "newsecret")
		testutil.AssertNoError(t, err)

		_, err = svc.Authenticate(user.Email, testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("email_taken", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Email: &other.Email})
		testutil.AssertFieldError(t, err, "email")
	})

	t.Run("empty_password_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Password: strPtr("")})
		testutil.AssertNoError(t, err)

		_, err = svc.Authenticate(user.Email, testutil.TestPassword)
		testutil.AssertNoError(t, err)
	})
}
