package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the database drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/car-rental/internal/config"
	"github.com/diewo77/car-rental/internal/models"
)

// ConnectAndMigrate opens the configured database, ensures the schema exists
// and seeds the admin account when the users table is empty.
func ConnectAndMigrate() (*gorm.DB, error) {
	cfg := config.Load()
	dsn := GetDSN()
	if dsn == "" {
		dsn = cfg.DatabaseDSN
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(Dialector(dsn), gormCfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	if IsSQLite(dsn) {
		// SQLite ships with foreign keys off; the cascade deletes depend on them.
		if pragmaErr := db.Exec("PRAGMA foreign_keys = ON").Error; pragmaErr != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", pragmaErr)
		}
	}

	// If MIGRATIONS=1 we run sql migrations via golang-migrate; otherwise
	// AutoMigrate keeps the schema current (dev convenience, idempotent).
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"users", "cars", "customers", "bookings", "services"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if err := SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the five tables.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{}, &models.Car{}, &models.Customer{}, &models.Booking{}, &models.Service{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// SeedAdmin creates the single admin account, but only when no user exists
// yet. Password rotation is out of scope; re-running is a no-op.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Username: username, PasswordHash: string(hash), Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Default admin created -> username: %s", username)
	return nil
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	// golang-migrate wants a URL-form DSN; MySQL DSNs need the scheme prefix.
	src := dsn
	if !strings.Contains(src, "://") {
		src = "mysql://" + src
	}
	m, err := migrate.New("file://migrations", src)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
