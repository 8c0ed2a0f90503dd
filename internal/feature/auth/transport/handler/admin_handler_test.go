package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"waste_backend/internal/feature/auth/domain/entity"
	"waste_backend/internal/feature/auth/usecase"
)

// mockAdminUsecase is a mock implementation of the AdminUsecase interface.
type mockAdminUsecase struct {
	ListUsersFunc     func(ctx context.Context) ([]entity.User, error)
	DeleteUserFunc    func(ctx context.Context, username string) error
	ResetPasswordFunc func(ctx context.Context, username, newPassword string) error
	GetJobTitlesFunc  func(ctx context.Context) ([]string, error)
}

func (m *mockAdminUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

func (m *mockAdminUsecase) DeleteUser(ctx context.Context, username string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, username)
	}
	return usecase.ErrUserNotFound
}

func (m *mockAdminUsecase) ResetPassword(ctx context.Context, username, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, username, newPassword)
	}
	return usecase.ErrUserNotFound
}

func (m *mockAdminUsecase) GetJobTitles(ctx context.Context) ([]string, error) {
	if m.GetJobTitlesFunc != nil {
		return m.GetJobTitlesFunc(ctx)
	}
	return nil, nil
}

func TestAdminHandler_ListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns every user without password hashes", func(t *testing.T) {
		mockUC := &mockAdminUsecase{
			ListUsersFunc: func(ctx context.Context) ([]entity.User, error) {
				return []entity.User{
					{ID: 1, Username: "alice", Password: "hash1"},
					{ID: 2, Username: "bob", Password: "hash2"},
				}, nil
			},
		}
		handler := NewAdminHandler(mockUC)
		router := gin.New()
		router.GET("/admin/users", handler.ListUsers)

		w := jsonRequest(router, http.MethodGet, "/admin/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "alice", resp[0]["username"])
		assert.NotContains(t, resp[0], "password", "password must never be serialized")
	})

	t.Run("empty store yields an empty array", func(t *testing.T) {
		handler := NewAdminHandler(&mockAdminUsecase{})
		router := gin.New()
		router.GET("/admin/users", handler.ListUsers)

		w := jsonRequest(router, http.MethodGet, "/admin/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("storage failure yields 500", func(t *testing.T) {
		mockUC := &mockAdminUsecase{
			ListUsersFunc: func(ctx context.Context) ([]entity.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		handler := NewAdminHandler(mockUC)
		router := gin.New()
		router.GET("/admin/users", handler.ListUsers)

		w := jsonRequest(router, http.MethodGet, "/admin/users", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: user removed", func(t *testing.T) {
		var deleted string
		mockUC := &mockAdminUsecase{
			DeleteUserFunc: func(ctx context.Context, username string) error {
				deleted = username
				return nil
			},
		}
		handler := NewAdminHandler(mockUC)
		router := gin.New()
		router.DELETE("/admin/users/:username", handler.DeleteUser)

		w := jsonRequest(router, http.MethodDelete, "/admin/users/bob", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", deleted)
	})

	t.Run("failure: unknown user yields 404", func(t *testing.T) {
		handler := NewAdminHandler(&mockAdminUsecase{})
		router := gin.New()
		router.DELETE("/admin/users/:username", handler.DeleteUser)

		w := jsonRequest(router, http.MethodDelete, "/admin/users/ghost", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminHandler_ResetUserPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: password replaced", func(t *testing.T) {
		var gotUser, gotPassword string
		mockUC := &mockAdminUsecase{
			ResetPasswordFunc: func(ctx context.Context, username, newPassword string) error {
				gotUser, gotPassword = username, newPassword
				return nil
			},
		}
		handler := NewAdminHandler(mockUC)
		router := gin.New()
		router.POST("/admin/users/:username/reset-password", handler.ResetUserPassword)

		w := jsonRequest(router, http.MethodPost, "/admin/users/bob/reset-password",
			gin.H{"new_password": "operator-set1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", gotUser)
		assert.Equal(t, "operator-set1", gotPassword)
	})

	t.Run("failure: unknown user yields 404", func(t *testing.T) {
		handler := NewAdminHandler(&mockAdminUsecase{})
		router := gin.New()
		router.POST("/admin/users/:username/reset-password", handler.ResetUserPassword)

		w := jsonRequest(router, http.MethodPost, "/admin/users/ghost/reset-password",
			gin.H{"new_password": "operator-set1"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("failure: short password rejected by binding", func(t *testing.T) {
		handler := NewAdminHandler(&mockAdminUsecase{})
		router := gin.New()
		router.POST("/admin/users/:username/reset-password", handler.ResetUserPassword)

		w := jsonRequest(router, http.MethodPost, "/admin/users/bob/reset-password",
			gin.H{"new_password": "short"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_ListJobTitles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockAdminUsecase{
		GetJobTitlesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Accountant", "QA Lead"}, nil
		},
	}
	handler := NewAdminHandler(mockUC)
	router := gin.New()
	router.GET("/admin/job-titles", handler.ListJobTitles)

	w := jsonRequest(router, http.MethodGet, "/admin/job-titles", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Accountant", "QA Lead"}, resp["job_titles"])
}
