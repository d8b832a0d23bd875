package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nestegg/internal/models"
	"nestegg/internal/testutil"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewUserService(db)

		dob := time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC)
		user, err := svc.CreateUser("alice", "alice@example.com", "s3cret-pass", dob)
		testutil.AssertNoError(t, err)
		if user.ID == 0 {
			t.Error("expected persisted user ID")
		}
		if user.Password == "s3cret-pass" {
			t.Error("expected password to be hashed")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")) != nil {
			t.Error("expected stored hash to match the password")
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewUserService(db)
		dob := time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateUser("bob", "bob@example.com", "password", dob)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("bobby", "bob@example.com", "password2", dob)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewUserService(db)

		_, err := svc.CreateUser("", "x@example.com", "password", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("x", "x@example.com", "password", time.Time{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUserService_AttemptLogin(t *testing.T) {
	t.Run("valid credentials return the user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		got, err := svc.AttemptLogin(user.Email, "password123")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin(user.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

		_, err = svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("nil pointers leave fields unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		_, err := svc.UpdateProfile(user.ID, "renamed", nil, nil)
		testutil.AssertNoError(t, err)

		var reloaded models.User
		testutil.AssertNoError(t, db.First(&reloaded, user.ID).Error)
		if reloaded.Username != "renamed" {
			t.Errorf("expected username %q, got %q", "renamed", reloaded.Username)
		}
		if !reloaded.DateOfBirth.Equal(user.DateOfBirth) {
			t.Errorf("expected date of birth unchanged, got %v", reloaded.DateOfBirth)
		}
	})

	t.Run("profile photo can be updated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		photo := "https://cdn.example.com/p.png"
		_, err := svc.UpdateProfile(user.ID, "", nil, &photo)
		testutil.AssertNoError(t, err)

		var reloaded models.User
		testutil.AssertNoError(t, db.First(&reloaded, user.ID).Error)
		if reloaded.ProfilePhoto != photo {
			t.Errorf("expected profile photo %q, got %q", photo, reloaded.ProfilePhoto)
		}
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewUserService(db)

		_, err := svc.UpdateProfile(999999, "ghost", nil, nil)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Run("successful change allows login with the new password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		testutil.AssertNoError(t, svc.ChangePassword(user.ID, "password123", "new-password"))

		_, err := svc.AttemptLogin(user.Email, "new-password")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin(user.Email, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		err := svc.ChangePassword(user.ID, "not-the-password", "new-password")
		testutil.AssertAppError(t, err, "WRONG_PASSWORD")
	})

	t.Run("empty passwords are rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewUserService(db)

		err := svc.ChangePassword(user.ID, "", "new-password")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
