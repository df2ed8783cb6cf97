package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"etalase/internal/config"
	"etalase/internal/database"
	"etalase/internal/repositories"
	"etalase/internal/server"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const indexHTML = "<!doctype html><title>Etalase</title>"

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		Name:         fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	t.Cleanup(func() { database.Close(db) })

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(indexHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('etalase')"), 0o644))

	app := server.New(server.Services{
		Auth:     services.NewAuthService(repositories.NewGORMUserRepository(db), config.AuthConfig{BcryptCost: bcrypt.MinCost}, nil),
		Products: services.NewProductService(repositories.NewGORMProductRepository(db), nil),
		Settings: services.NewSettingService(repositories.NewGORMSettingRepository(db)),
	}, server.Options{StaticDir: staticDir})
	return app, db
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestHealth_IndependentOfDatabase(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, database.Close(db))

	status, body := request(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	status, _ = request(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	status, _ = request(t, app, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestStaticFallback(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := request(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, indexHTML, string(body))

	status, body = request(t, app, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "etalase")

	// Client-side routes get the entry document.
	for _, path := range []string{"/products/42", "/admin/settings", "/api/unknown"} {
		status, body = request(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, indexHTML, string(body), path)
	}
}

func TestUnmatchedNonGetIsJSONError(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := request(t, app, http.MethodDelete, "/api/products", nil)
	assert.GreaterOrEqual(t, status, 400)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.NotEmpty(t, decoded["error"])
}

func TestWithoutStaticDir(t *testing.T) {
	app := server.New(server.Services{}, server.Options{})

	status, _ := request(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodGet, "/anything", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEndToEndScenario(t *testing.T) {
	app, _ := newTestApp(t)

	type authBody struct {
		Success bool `json:"success"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			IsAdmin  bool   `json:"is_admin"`
		} `json:"user"`
	}
	creds := func(u, p string) map[string]string { return map[string]string{"username": u, "password": p} }

	status, raw := request(t, app, http.MethodPost, "/api/register", creds("alice", "pw1"))
	require.Equal(t, http.StatusCreated, status)
	var alice authBody
	require.NoError(t, json.Unmarshal(raw, &alice))
	assert.True(t, alice.Success)
	assert.True(t, alice.User.IsAdmin)

	status, raw = request(t, app, http.MethodPost, "/api/register", creds("bob", "pw2"))
	require.Equal(t, http.StatusCreated, status)
	var bob authBody
	require.NoError(t, json.Unmarshal(raw, &bob))
	assert.False(t, bob.User.IsAdmin)

	status, raw = request(t, app, http.MethodPost, "/api/login", creds("alice", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, string(raw))

	status, raw = request(t, app, http.MethodPost, "/api/login", creds("alice", "pw1"))
	require.Equal(t, http.StatusOK, status)
	var login authBody
	require.NoError(t, json.Unmarshal(raw, &login))
	assert.Equal(t, alice.User.ID, login.User.ID)
	assert.True(t, login.User.IsAdmin)

	status, raw = request(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "Widget", "price": 9.99})
	require.Equal(t, http.StatusCreated, status)
	var widget map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &widget))
	assert.NotEmpty(t, widget["id"])
	assert.NotEmpty(t, widget["created_at"])

	status, raw = request(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &products))
	require.NotEmpty(t, products)
	assert.Equal(t, "Widget", products[0]["name"])
	assert.Equal(t, widget["id"], products[0]["id"])
}
