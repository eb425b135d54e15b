package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/uploads"
)

func seedProduct(t *testing.T, env *testEnv, name, image string) models.Product {
	t.Helper()
	product := models.Product{
		ProductName:  name,
		ProductPrice: decimal.NewFromInt(10000),
		Image:        image,
	}
	require.NoError(t, env.Repo.DB.Create(&product).Error)
	return product
}

func TestCreateProductWithoutImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	rec := env.doJSON(http.MethodPost, "/products", token, map[string]any{
		"product_name":  "Kopi Susu",
		"product_price": 18000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Product created successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, uploads.DefaultImage, data["image"])
	assert.Equal(t, "http://example.com/uploads/"+uploads.DefaultImage, data["imageUrl"])
}

func TestCreateProductWithImageURL(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	rec := env.doJSON(http.MethodPost, "/products", token, map[string]any{
		"product_name":  "Kopi Susu",
		"product_price": 18000,
		"imageUrl":      "https://cdn.example.com/kopi.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	// externally hosted images pass through untouched
	assert.Equal(t, "https://cdn.example.com/kopi.png", data["image"])
	assert.Equal(t, "https://cdn.example.com/kopi.png", data["imageUrl"])
}

func TestCreateProductMultipartUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	body, contentType := multipartBody(t, map[string]string{
		"product_name":  "Kopi Susu",
		"product_price": "18000",
	}, "kopi.png", "fake-png-bytes")

	rec := env.do(http.MethodPost, "/products", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "kopi.png", data["image"])
	assert.FileExists(t, env.Store.Path("kopi.png"))
}

func TestCreateProductMissingName(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	rec := env.doJSON(http.MethodPost, "/products", token, map[string]any{"product_price": 100})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsMaterializesImageURL(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Kopi Susu", "kopi.png")

	rec := env.do(http.MethodGet, "/products", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(10), body["limit"])

	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "http://example.com/uploads/kopi.png", row["imageUrl"])
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/products/999", "", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeBody(t, rec)["error"])
}

func TestUpdateProductReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	body, contentType := multipartBody(t, map[string]string{
		"product_name":  "Kopi Susu",
		"product_price": "18000",
	}, "kopi.png", "old-bytes")
	rec := env.do(http.MethodPost, "/products", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["data"].(map[string]any)["id"].(float64)

	body, contentType = multipartBody(t, nil, "baru.png", "new-bytes")
	rec = env.do(http.MethodPut, fmt.Sprintf("/products/%d", int(id)), token, body, contentType)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product successfully updated", decodeBody(t, rec)["message"])

	env.Cleaner.Close()
	assert.NoFileExists(t, env.Store.Path("kopi.png"))
	assert.FileExists(t, env.Store.Path("baru.png"))

	var stored models.Product
	require.NoError(t, env.Repo.DB.First(&stored, uint(id)).Error)
	assert.Equal(t, "baru.png", stored.Image)
}

func TestUpdateProductEmptyBody(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)
	product := seedProduct(t, env, "Kopi Susu", "kopi.png")

	rec := env.doJSON(http.MethodPut, fmt.Sprintf("/products/%d", product.ID), token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no product data to update", decodeBody(t, rec)["error"])
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	rec := env.doJSON(http.MethodPut, "/products/999", token, map[string]any{"product_name": "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductCleansStoredFile(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)

	body, contentType := multipartBody(t, map[string]string{
		"product_name":  "Kopi Susu",
		"product_price": "18000",
	}, "kopi.png", "bytes")
	rec := env.do(http.MethodPost, "/products", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["data"].(map[string]any)["id"].(float64)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/products/%d", int(id)), token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	env.Cleaner.Close()
	assert.NoFileExists(t, env.Store.Path("kopi.png"))
}

func TestDeleteProductKeepsDefaultImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.superadminToken(t)
	product := seedProduct(t, env, "Teh Manis", uploads.DefaultImage)

	rec := env.do(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), token, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
