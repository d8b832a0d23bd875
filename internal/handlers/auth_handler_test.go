package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectUserID simulates an authenticated request by setting the user ID
// the way the auth middleware does.
func injectUserID(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRawRequest sends a raw JSON string, for payloads that cannot be
// expressed with marshaling (e.g. string-typed amounts).
func doRawRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response body: %v (body: %s)", err, w.Body.String())
	}
	return body
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) map[string]interface{} {
	t.Helper()

	if w.Code != wantStatus {
		t.Errorf("expected status %d, got %d (body: %s)", wantStatus, w.Code, w.Body.String())
	}
	body := parseJSON(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	if errObj["code"] != wantCode {
		t.Errorf("expected error code %q, got %v", wantCode, errObj["code"])
	}
	return errObj
}

type mockUserService struct {
	createUserFn     func(username, email, password string, dateOfBirth time.Time) (*models.User, error)
	getUserByIDFn    func(id uint) (*models.User, error)
	attemptLoginFn   func(email, password string) (*models.User, error)
	updateProfileFn  func(userID uint, username string, dateOfBirth *time.Time, profilePhoto *string) (*models.User, error)
	changePasswordFn func(userID uint, currentPassword, newPassword string) error
}

func (m *mockUserService) CreateUser(username, email, password string, dateOfBirth time.Time) (*models.User, error) {
	return m.createUserFn(username, email, password, dateOfBirth)
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	return m.getUserByIDFn(id)
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	return m.attemptLoginFn(email, password)
}

func (m *mockUserService) UpdateProfile(userID uint, username string, dateOfBirth *time.Time, profilePhoto *string) (*models.User, error) {
	return m.updateProfileFn(userID, username, dateOfBirth, profilePhoto)
}

func (m *mockUserService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	return m.changePasswordFn(userID, currentPassword, newPassword)
}

func testUser(id uint) *models.User {
	u := &models.User{
		Username:    "alice",
		Email:       "alice@example.com",
		DateOfBirth: time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	u.ID = id
	return u
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration returns tokens", func(t *testing.T) {
		mock := &mockUserService{
			createUserFn: func(username, email, password string, dateOfBirth time.Time) (*models.User, error) {
				if username != "alice" || email != "alice@example.com" {
					t.Errorf("unexpected args: %s %s", username, email)
				}
				return testUser(1), nil
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/register", handler.Register)

		w := doRequest(t, router, http.MethodPost, "/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "password123",
			"dob":      "1992-04-12T00:00:00Z",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
		}
		body := parseJSON(t, w)
		if body["token"] == nil || body["refresh_token"] == nil {
			t.Error("expected access and refresh tokens in response")
		}
	})

	t.Run("missing fields are rejected at binding", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		router := gin.New()
		router.POST("/register", handler.Register)

		w := doRequest(t, router, http.MethodPost, "/register", gin.H{"username": "alice"})
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("duplicate email surfaces the service error", func(t *testing.T) {
		mock := &mockUserService{
			createUserFn: func(string, string, string, time.Time) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/register", handler.Register)

		w := doRequest(t, router, http.MethodPost, "/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "password123",
			"dob":      "1992-04-12T00:00:00Z",
		})
		assertErrorCode(t, w, http.StatusBadRequest, "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns tokens and profile", func(t *testing.T) {
		mock := &mockUserService{
			attemptLoginFn: func(email, password string) (*models.User, error) {
				return testUser(7), nil
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/login", handler.Login)

		w := doRequest(t, router, http.MethodPost, "/login", gin.H{
			"email":    "alice@example.com",
			"password": "password123",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
		}
		body := parseJSON(t, w)
		user, ok := body["user"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected user object, got %v", body)
		}
		if user["email"] != "alice@example.com" {
			t.Errorf("expected email in profile, got %v", user["email"])
		}
	})

	t.Run("invalid credentials return 401", func(t *testing.T) {
		mock := &mockUserService{
			attemptLoginFn: func(string, string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/login", handler.Login)

		w := doRequest(t, router, http.MethodPost, "/login", gin.H{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assertErrorCode(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns the authenticated user's profile", func(t *testing.T) {
		mock := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				if id != 42 {
					t.Errorf("expected lookup of user 42, got %d", id)
				}
				u := testUser(42)
				u.Savings = 1234.5
				return u, nil
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.GET("/profile", injectUserID(42), handler.GetProfile)

		w := doRequest(t, router, http.MethodGet, "/profile", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := parseJSON(t, w)
		user := body["user"].(map[string]interface{})
		if user["savings"].(float64) != 1234.5 {
			t.Errorf("expected savings in profile, got %v", user["savings"])
		}
	})

	t.Run("missing authentication returns 401", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{})
		router := gin.New()
		router.GET("/profile", handler.GetProfile)

		w := doRequest(t, router, http.MethodGet, "/profile", nil)
		assertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("wrong current password returns the service error", func(t *testing.T) {
		mock := &mockUserService{
			changePasswordFn: func(userID uint, currentPassword, newPassword string) error {
				return apperrors.ErrWrongPassword
			},
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/change-password", injectUserID(1), handler.ChangePassword)

		w := doRequest(t, router, http.MethodPost, "/change-password", gin.H{
			"current_password": "wrong",
			"new_password":     "new-password",
		})
		assertErrorCode(t, w, http.StatusBadRequest, "WRONG_PASSWORD")
	})

	t.Run("successful change returns a confirmation", func(t *testing.T) {
		mock := &mockUserService{
			changePasswordFn: func(uint, string, string) error { return nil },
		}
		handler := NewAuthHandler(mock)
		router := gin.New()
		router.POST("/change-password", injectUserID(1), handler.ChangePassword)

		w := doRequest(t, router, http.MethodPost, "/change-password", gin.H{
			"current_password": "password123",
			"new_password":     "new-password",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
		}
	})
}
