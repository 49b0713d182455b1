package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)

	w := env.do(t, http.MethodPost, "/users", admin, "", dto.CreateUserRequest{
		Email:    "clerk@example.com",
		Username: "clerk",
		Name:     "Store Clerk",
		Password: "clerkpass1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user database.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotEmpty(t, user.ID)
	assert.NotContains(t, w.Body.String(), "clerkpass1")

	// created users can log in right away
	env.login(t, "clerk@example.com", "clerkpass1")

	// duplicate email is rejected
	w = env.do(t, http.MethodPost, "/users", admin, "", dto.CreateUserRequest{
		Email:    "clerk@example.com",
		Username: "clerk2",
		Password: "clerkpass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	newName := "Senior Clerk"
	inactive := false
	w = env.do(t, http.MethodPut, "/users/"+user.ID, admin, "",
		dto.UpdateUserRequest{Name: &newName, IsActive: &inactive})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// deactivated users cannot log in
	w = env.do(t, http.MethodPost, "/api/auth/login", "", "",
		dto.LoginRequest{Email: "clerk@example.com", Password: "clerkpass1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/users/"+user.ID, admin, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users/"+user.ID, admin, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsers_RequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	regular := env.login(t, "user@example.com", testAdminPassword)

	// the seeded regular user holds users:read
	w := env.do(t, http.MethodGet, "/users", regular, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// but not users:create
	w = env.do(t, http.MethodPost, "/users", regular, "", dto.CreateUserRequest{
		Email:    "x@example.com",
		Username: "x",
		Password: "password1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
