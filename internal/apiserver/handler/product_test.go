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

func TestCreateProduct_SKUPerCompany(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")
	xyz := env.companyByCode(t, "XYZ")

	w := env.do(t, http.MethodPost, "/api/products", admin, abc.ID,
		dto.CreateProductRequest{SKU: "DRL-100", Name: "Power Drill", Price: 89.90})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// same SKU in the same company is rejected
	w = env.do(t, http.MethodPost, "/api/products", admin, abc.ID,
		dto.CreateProductRequest{SKU: "DRL-100", Name: "Another Drill", Price: 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// but fine in a different company
	w = env.do(t, http.MethodPost, "/api/products", admin, xyz.ID,
		dto.CreateProductRequest{SKU: "DRL-100", Name: "Power Drill", Price: 95})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestListProducts_CompanyScoped(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")
	xyz := env.companyByCode(t, "XYZ")

	w := env.do(t, http.MethodPost, "/api/products", admin, xyz.ID,
		dto.CreateProductRequest{SKU: "SAW-200", Name: "Circular Saw", Price: 120})
	require.Equal(t, http.StatusCreated, w.Code)

	var abcProducts, xyzProducts []*database.Product
	w = env.do(t, http.MethodGet, "/api/products", admin, abc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &abcProducts))

	w = env.do(t, http.MethodGet, "/api/products", admin, xyz.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &xyzProducts))

	for _, p := range abcProducts {
		assert.NotEqual(t, "SAW-200", p.SKU)
	}
	require.Len(t, xyzProducts, 1)
	assert.Equal(t, "SAW-200", xyzProducts[0].SKU)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")

	w := env.do(t, http.MethodPost, "/api/products", admin, abc.ID,
		dto.CreateProductRequest{SKU: "PLR-300", Name: "Pliers", Price: 12})
	require.Equal(t, http.StatusCreated, w.Code)
	var product database.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	price := 14.5
	w = env.do(t, http.MethodPatch, "/api/products/"+product.ID, admin, abc.ID,
		dto.UpdateProductRequest{Price: &price})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated database.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 14.5, updated.Price)
	assert.Equal(t, "PLR-300", updated.SKU)

	w = env.do(t, http.MethodDelete, "/api/products/"+product.ID, admin, abc.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/products/"+product.ID, admin, abc.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventory_BootstrappedWithProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")

	w := env.do(t, http.MethodPost, "/api/products", admin, abc.ID,
		dto.CreateProductRequest{SKU: "CHS-400", Name: "Chisel Set", Price: 25})
	require.Equal(t, http.StatusCreated, w.Code)
	var product database.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	var items []*database.InventoryItem
	w = env.do(t, http.MethodGet, "/api/inventory", admin, abc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))

	var item *database.InventoryItem
	for _, i := range items {
		if i.ProductID == product.ID {
			item = i
		}
	}
	require.NotNil(t, item)
	assert.Equal(t, "main", item.Location)
	assert.Zero(t, item.Quantity)

	w = env.do(t, http.MethodPut, "/api/inventory", admin, abc.ID,
		dto.UpdateInventoryRequest{ProductID: product.ID, Quantity: 40})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/inventory", admin, abc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	for _, i := range items {
		if i.ProductID == product.ID {
			assert.Equal(t, 40, i.Quantity)
		}
	}
}

func TestInventoryUpdate_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)
	abc := env.companyByCode(t, "ABC")

	w := env.do(t, http.MethodPut, "/api/inventory", admin, abc.ID,
		dto.UpdateInventoryRequest{ProductID: "missing", Quantity: 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
