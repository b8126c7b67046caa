package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.DB = db

	app := fiber.New()
	app.Post("/api/v1/auth/register", RegisterUser)
	return app
}

func postRegister(t *testing.T, app *fiber.App, body string) int {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	app := setupAuthTest(t)

	body := `{"full_name":"Pat Doe","email":"pat@example.com","password":"secret123"}`
	assert.Equal(t, fiber.StatusCreated, postRegister(t, app, body))

	// Same email again answers a conflict, not an internal error.
	assert.Equal(t, fiber.StatusConflict, postRegister(t, app, body))

	var count int64
	require.NoError(t, database.DB.Model(&models.User{}).
		Where("email = ?", "pat@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUserValidatesInput(t *testing.T) {
	app := setupAuthTest(t)

	status := postRegister(t, app, `{"full_name":"X","email":"not-an-email","password":"short"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
