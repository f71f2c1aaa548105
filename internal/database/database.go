package database

import (
	"log"

	"homehub/config"
	"homehub/internal/domain"
	"homehub/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.House{},
		&models.PaymentMethods{},
		&models.Booking{},
		&models.PaymentTransaction{},
		&models.MaintenanceRequest{},
		&models.Notification{},
		&models.ServiceProvider{},
		&models.ServiceRequest{},
		&models.SupportTicket{},
		&models.SupportMessage{},
	)
}

// SeedAdmin creates the default admin account if no admin exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	admin := models.User{
		Name:  "HomeHub Admin",
		Email: "admin@homehub.local",
		Role:  domain.RoleAdmin,
	}
	if err := admin.SetPassword("change-me-admin"); err != nil {
		log.Printf("[SEED] admin password hash failed: %v", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[SEED] admin create failed: %v", err)
		return
	}
	log.Printf("[SEED] created default admin %s", admin.Email)
}
