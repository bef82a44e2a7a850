package sqlite

import (
	"os"
	"time"

	"github.com/luckys-lnz/book-and-payGH/cmd/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"

	"gorm.io/gorm"
)

// Init opens the database. A DATABASE_URL points at Postgres; without one
// we fall back to a local SQLite file.
func Init() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open("./database.db"), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	err = AutoMigrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Business{},
		&entity.Service{},
		&entity.Booking{},
		&entity.Payment{},
		&entity.WaitlistEntry{},
	)
}
