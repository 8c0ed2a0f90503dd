package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
	"waste_backend/internal/platform/challenge"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc               func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error)
	AuthenticateFunc         func(ctx context.Context, username, password, code string) (*entity.User, bool, error)
	VerifyTOTPFunc           func(ctx context.Context, userID uint, code string) (*entity.User, error)
	RequestPasswordResetFunc func(ctx context.Context, username string) (string, error)
	ConfirmPasswordResetFunc func(ctx context.Context, token, newPassword string) error
}

func (m *mockAuthUsecase) Signup(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, username, email, password, department, jobTitle)
	}
	return nil, errors.New("signup failed") // Default: failure
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, username, password, code string) (*entity.User, bool, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password, code)
	}
	return nil, false, usecase.ErrInvalidCredentials // Default: failure
}

func (m *mockAuthUsecase) VerifyTOTP(ctx context.Context, userID uint, code string) (*entity.User, error) {
	if m.VerifyTOTPFunc != nil {
		return m.VerifyTOTPFunc(ctx, userID, code)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockAuthUsecase) RequestPasswordReset(ctx context.Context, username string) (string, error) {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, username)
	}
	return "", nil
}

func (m *mockAuthUsecase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if m.ConfirmPasswordResetFunc != nil {
		return m.ConfirmPasswordResetFunc(ctx, token, newPassword)
	}
	return usecase.ErrInvalidResetToken
}

// mockChallengeStore is a mock implementation of the ChallengeStore interface.
type mockChallengeStore struct {
	CreateFunc  func(ctx context.Context, userID uint, username string) (string, error)
	ConsumeFunc func(ctx context.Context, token string) (*challenge.PendingLogin, error)
}

func (m *mockChallengeStore) Create(ctx context.Context, userID uint, username string) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, username)
	}
	return "challenge-token", nil
}

func (m *mockChallengeStore) Consume(ctx context.Context, token string) (*challenge.PendingLogin, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token)
	}
	return nil, challenge.ErrNotFound
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, username string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, username string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, username)
	}
	return "dummy-jwt-token", nil
}

func postJSON(router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "password123",
		"department": "Engineering",
		"job_title":  "QA Lead",
	}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error)
		expectedStatus int
	}{
		{
			name:        "success: user registration",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
				return &entity.User{ID: 1, Username: username, Email: email,
					Department: department, JobTitle: jobTitle}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"username": "alice", "email": "invalid-email", "password": "password123", "department": "Engineering", "job_title": "QA"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"username": "alice", "email": "alice@example.com", "password": "short", "department": "Engineering", "job_title": "QA"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: duplicate username",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
				return nil, usecase.ErrDuplicateUsername
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: duplicate email",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
				return nil, usecase.ErrDuplicateEmail
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "failure: unknown department",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
				return nil, usecase.ErrInvalidDepartment
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: storage error",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, username, email, password, department, jobTitle string) (*entity.User, error) {
				return nil, errors.New("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})

			router := gin.New()
			router.POST("/signup", handler.Signup)

			w := postJSON(router, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "alice", resp["username"])
				assert.NotContains(t, resp, "password", "password must never be serialized")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userFixture := &entity.User{ID: 7, Username: "alice"}

	t.Run("success: login without 2FA returns a token", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, username, password, code string) (*entity.User, bool, error) {
				return userFixture, false, nil
			},
		}
		handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice", "password": "password123"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "dummy-jwt-token", resp["token"])
	})

	t.Run("failure: bad credentials return a generic 401", func(t *testing.T) {
		mockUC := &mockAuthUsecase{} // Default: ErrInvalidCredentials
		handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice", "password": "wrong-password"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid username or password", resp["error"],
			"the response must not reveal which credential failed")
	})

	t.Run("2FA pending with challenge store issues a challenge", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, username, password, code string) (*entity.User, bool, error) {
				return userFixture, true, nil
			},
		}
		created := false
		store := &mockChallengeStore{
			CreateFunc: func(ctx context.Context, userID uint, username string) (string, error) {
				created = true
				assert.Equal(t, uint(7), userID)
				return "challenge-token", nil
			},
		}
		handler := NewAuthHandler(mockUC, store, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice", "password": "password123"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, created, "challenge was not stored")
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["two_factor_required"])
		assert.Equal(t, "challenge-token", resp["challenge"])
		assert.NotContains(t, resp, "token", "no session token before the second factor")
	})

	t.Run("2FA pending without challenge store omits the challenge", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, username, password, code string) (*entity.User, bool, error) {
				return userFixture, true, nil
			},
		}
		handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice", "password": "password123"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["two_factor_required"])
		assert.NotContains(t, resp, "challenge")
	})

	t.Run("one-shot login with code authenticates in one round trip", func(t *testing.T) {
		var gotCode string
		mockUC := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, username, password, code string) (*entity.User, bool, error) {
				gotCode = code
				return userFixture, false, nil
			},
		}
		handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice", "password": "password123", "code": "123456"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "123456", gotCode, "code not passed through")
	})

	t.Run("failure: missing fields return 400", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthUsecase{}, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login", handler.Login)

		w := postJSON(router, "/login", gin.H{"username": "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_LoginTwoFactor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userFixture := &entity.User{ID: 7, Username: "alice"}

	t.Run("success: valid challenge and code return a token", func(t *testing.T) {
		store := &mockChallengeStore{
			ConsumeFunc: func(ctx context.Context, token string) (*challenge.PendingLogin, error) {
				assert.Equal(t, "challenge-token", token)
				return &challenge.PendingLogin{UserID: 7, Username: "alice"}, nil
			},
		}
		mockUC := &mockAuthUsecase{
			VerifyTOTPFunc: func(ctx context.Context, userID uint, code string) (*entity.User, error) {
				assert.Equal(t, uint(7), userID)
				return userFixture, nil
			},
		}
		handler := NewAuthHandler(mockUC, store, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login/2fa", handler.LoginTwoFactor)

		w := postJSON(router, "/login/2fa", gin.H{"challenge": "challenge-token", "code": "123456"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "dummy-jwt-token", resp["token"])
	})

	t.Run("failure: unknown challenge returns 401", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthUsecase{}, &mockChallengeStore{}, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login/2fa", handler.LoginTwoFactor)

		w := postJSON(router, "/login/2fa", gin.H{"challenge": "gone", "code": "123456"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("failure: wrong code returns 401", func(t *testing.T) {
		store := &mockChallengeStore{
			ConsumeFunc: func(ctx context.Context, token string) (*challenge.PendingLogin, error) {
				return &challenge.PendingLogin{UserID: 7, Username: "alice"}, nil
			},
		}
		handler := NewAuthHandler(&mockAuthUsecase{}, store, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login/2fa", handler.LoginTwoFactor)

		w := postJSON(router, "/login/2fa", gin.H{"challenge": "challenge-token", "code": "000000"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("failure: no challenge store returns 503", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthUsecase{}, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/login/2fa", handler.LoginTwoFactor)

		w := postJSON(router, "/login/2fa", gin.H{"challenge": "challenge-token", "code": "123456"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAuthHandler_RequestPasswordReset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("known and unknown users get the same response", func(t *testing.T) {
		known := &mockAuthUsecase{
			RequestPasswordResetFunc: func(ctx context.Context, username string) (string, error) {
				return "issued-token", nil
			},
		}
		unknown := &mockAuthUsecase{
			RequestPasswordResetFunc: func(ctx context.Context, username string) (string, error) {
				return "", nil
			},
		}

		var bodies []string
		for _, uc := range []*mockAuthUsecase{known, unknown} {
			handler := NewAuthHandler(uc, nil, &mockTokenGenerator{})
			router := gin.New()
			router.POST("/password-reset/request", handler.RequestPasswordReset)

			w := postJSON(router, "/password-reset/request", gin.H{"username": "whoever"})

			assert.Equal(t, http.StatusAccepted, w.Code)
			bodies = append(bodies, w.Body.String())
		}
		assert.Equal(t, bodies[0], bodies[1], "responses must not reveal whether the user exists")
		assert.NotContains(t, bodies[0], "issued-token", "token must not appear in the response")
	})

	t.Run("failure: storage error returns 500", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			RequestPasswordResetFunc: func(ctx context.Context, username string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})
		router := gin.New()
		router.POST("/password-reset/request", handler.RequestPasswordReset)

		w := postJSON(router, "/password-reset/request", gin.H{"username": "alice"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_ConfirmPasswordReset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     gin.H
		mockConfirmFunc func(ctx context.Context, token, newPassword string) error
		expectedStatus  int
	}{
		{
			name:        "success: password updated",
			requestBody: gin.H{"token": "valid-token", "new_password": "brand-new-pw"},
			mockConfirmFunc: func(ctx context.Context, token, newPassword string) error {
				return nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:            "failure: invalid token",
			requestBody:     gin.H{"token": "expired", "new_password": "brand-new-pw"},
			mockConfirmFunc: nil, // Default: ErrInvalidResetToken
			expectedStatus:  http.StatusUnauthorized,
		},
		{
			name:            "failure: short password rejected by binding",
			requestBody:     gin.H{"token": "valid-token", "new_password": "short"},
			mockConfirmFunc: nil,
			expectedStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{ConfirmPasswordResetFunc: tt.mockConfirmFunc}
			handler := NewAuthHandler(mockUC, nil, &mockTokenGenerator{})

			router := gin.New()
			router.POST("/password-reset/confirm", handler.ConfirmPasswordReset)

			w := postJSON(router, "/password-reset/confirm", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
