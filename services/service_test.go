package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/fathallah7/health-clinic/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.DoctorAvailability{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.Payment{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func createTestPatient(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		FullName: "Test Patient",
		Email:    email,
		Password: "hashed",
		Role:     "patient",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestAvailability(t *testing.T, db *gorm.DB, start, end string, duration int) models.DoctorAvailability {
	t.Helper()

	availability, svcErr := CreateAvailability(db, AvailabilityInput{
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    start,
		EndTime:      end,
		SlotDuration: duration,
	})
	require.Nil(t, svcErr)
	return *availability
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	category := models.Category{Name: "Category for " + name}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
