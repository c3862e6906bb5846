package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/config"
	"warbler/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp spins up the full API over an in-memory database with no
// Redis, so handlers run end to end without external services.
func setupTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret: "test-secret-key-12345678901234567890123456789012",
		Port:      "8480",
		Env:       "test",
		UploadDir: t.TempDir(),
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, token string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, method, target, body, token), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp.StatusCode, parsed
}

// signupUser registers a user and returns its token and ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusCreated, status, "signup response: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return token, uint(id)
}
