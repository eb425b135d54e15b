package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/hash"
	"github.com/poskasir/catalog-api/internal/middleware"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/service"
	"github.com/poskasir/catalog-api/internal/tokens"
	"github.com/poskasir/catalog-api/internal/uploads"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	Echo    *echo.Echo
	Repo    *repo.GormRepo
	Store   *uploads.Store
	Cleaner *uploads.Cleaner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}))

	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cleaner := uploads.NewCleaner(store, log)

	r := &repo.GormRepo{DB: gdb}
	catalog := &service.CatalogService{Repo: r, Files: store, Cleaner: cleaner}
	users := &service.UserService{Repo: r, JWTSecret: testSecret}

	e := echo.New()
	Register(e, &Deps{
		CategoryHandler: &CategoryHTTP{Svc: catalog},
		ProductHandler:  &ProductHTTP{Svc: catalog},
		UserHandler:     &UserHTTP{Svc: users},
		Auth:            middleware.NewAuthMiddleware(testSecret),
		UploadDir:       store.Dir,
	})

	return &testEnv{Echo: e, Repo: r, Store: store, Cleaner: cleaner}
}

func (env *testEnv) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(method, path, token string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return env.do(method, path, token, bytes.NewReader(body), echo.MIMEApplicationJSON)
}

// seedUser inserts a user directly and returns a signed token for it.
func (env *testEnv) seedUser(t *testing.T, email, password, role string) (string, string) {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		ID:        uuid.NewString(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  pwHash,
		Role:      role,
	}
	require.NoError(t, env.Repo.DB.Create(&user).Error)

	token, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, testSecret)
	require.NoError(t, err)
	return user.ID, token
}

func (env *testEnv) superadminToken(t *testing.T) string {
	t.Helper()
	_, token := env.seedUser(t, "admin@example.com", "secret123", models.RoleSuperadmin)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// multipartBody builds a multipart form with the given fields plus an optional
// image file part.
func multipartBody(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/ping", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "API is running", rec.Body.String())
}
