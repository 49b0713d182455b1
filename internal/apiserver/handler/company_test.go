package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) companyByCode(t *testing.T, code string) *database.Company {
	t.Helper()
	company, err := e.db.GetCompanyByCode(context.Background(), code)
	require.NoError(t, err)
	return company
}

func TestCreateCompany_DuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)

	w := env.do(t, http.MethodPost, "/api/companies", admin, "",
		dto.CreateCompanyRequest{Name: "Fresh Hardware", Code: "FRESH"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// codes are normalized to upper case, so "fresh" collides
	w = env.do(t, http.MethodPost, "/api/companies", admin, "",
		dto.CreateCompanyRequest{Name: "Other Hardware", Code: "fresh"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyCRUD(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)

	w := env.do(t, http.MethodGet, "/api/companies", admin, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var companies []*database.Company
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &companies))
	require.GreaterOrEqual(t, len(companies), 2)

	abc := env.companyByCode(t, "ABC")
	w = env.do(t, http.MethodGet, "/api/companies/"+abc.ID, admin, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	newName := "ABC Hardware & Tools"
	w = env.do(t, http.MethodPatch, "/api/companies/"+abc.ID, admin, "",
		dto.UpdateCompanyRequest{Name: &newName})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated database.Company
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, newName, updated.Name)

	w = env.do(t, http.MethodGet, "/api/companies/missing-id", admin, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanySettings_HeaderScoped(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")
	xyz := env.companyByCode(t, "XYZ")

	// update settings for ABC explicitly
	w := env.do(t, http.MethodPut, "/api/companies/settings", admin, abc.ID,
		dto.UpdateCompanySettingsRequest{Settings: map[string]any{"currency": "EUR"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// read back through the cache
	for i := 0; i < 2; i++ {
		w = env.do(t, http.MethodGet, "/api/companies/settings", admin, abc.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "EUR")
	}

	// XYZ settings are independent
	w = env.do(t, http.MethodGet, "/api/companies/settings", admin, xyz.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "EUR")

	// update invalidates the cached copy
	w = env.do(t, http.MethodPut, "/api/companies/settings", admin, abc.ID,
		dto.UpdateCompanySettingsRequest{Settings: map[string]any{"currency": "USD"}})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/companies/settings", admin, abc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USD")
	assert.NotContains(t, w.Body.String(), "EUR")
}

func TestCompanySettings_MembershipRequired(t *testing.T) {
	env := newTestEnv(t)
	regular := env.login(t, "user@example.com", testAdminPassword)
	xyz := env.companyByCode(t, "XYZ")

	// the regular user is not linked to XYZ
	w := env.do(t, http.MethodGet, "/api/companies/settings", regular, xyz.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddUserToCompany(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	regular := env.login(t, "user@example.com", testAdminPassword)
	user := env.userByEmail(t, "user@example.com")
	xyz := env.companyByCode(t, "XYZ")

	w := env.do(t, http.MethodPost, "/api/companies/members", admin, "",
		dto.AddUserToCompanyRequest{UserID: user.ID, CompanyID: xyz.ID, Role: "clerk"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the user can now act on XYZ
	w = env.do(t, http.MethodGet, "/api/companies/settings", regular, xyz.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
