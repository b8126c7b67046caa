package database

import (
	"fmt"
	"log"

	config "github.com/fathallah7/health-clinic/configs"
	"github.com/fathallah7/health-clinic/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.ConfigOr("ADMIN_FULL_NAME", "Super Admin"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedCatalog inserts a demo category and a handful of products so a
// fresh install has something to sell. Skipped once any product exists.
func SeedCatalog() {
	var count int64
	if err := DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check for products: %v", err)
		return
	}
	if count > 0 {
		return
	}

	pharmacy := models.Category{Name: "Pharmacy"}
	wellness := models.Category{Name: "Wellness"}
	if err := DB.Create(&pharmacy).Error; err != nil {
		log.Printf("🔥 Failed to seed categories: %v", err)
		return
	}
	if err := DB.Create(&wellness).Error; err != nil {
		log.Printf("🔥 Failed to seed categories: %v", err)
		return
	}

	desc := func(s string) *string { return &s }
	products := []models.Product{
		{Name: "Digital Thermometer", Description: desc("Fast-read digital thermometer"), Price: 12.50, Stock: 120, CategoryID: pharmacy.ID},
		{Name: "Blood Pressure Monitor", Description: desc("Upper-arm cuff monitor"), Price: 45.00, Stock: 50, CategoryID: pharmacy.ID},
		{Name: "Vitamin D3 Supplement", Description: desc("90 softgels, 2000 IU"), Price: 9.99, Stock: 300, CategoryID: wellness.ID},
		{Name: "First Aid Kit", Description: desc("Compact travel kit"), Price: 18.75, Stock: 80, CategoryID: pharmacy.ID},
		{Name: "Resistance Bands Set", Description: desc("Three-strength rehab bands"), Price: 15.25, Stock: 200, CategoryID: wellness.ID},
	}
	if err := DB.Create(&products).Error; err != nil {
		log.Printf("🔥 Failed to seed products: %v", err)
		return
	}

	log.Println("✅ Catalog seeded successfully")
}
