// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error

	logLevel := logger.Info
	if cfg.LogLevel == "silent" {
		logLevel = logger.Silent
	}

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the services match on.
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Design{},
		&models.Purchase{},
		&models.Like{},
		&models.Follow{},
		&models.JobPost{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_type_status ON users(user_type, status)",

		// Design indexes
		"CREATE INDEX IF NOT EXISTS idx_designs_creator ON designs(creator_id)",
		"CREATE INDEX IF NOT EXISTS idx_designs_status ON designs(status)",
		"CREATE INDEX IF NOT EXISTS idx_designs_category ON designs(category)",
		"CREATE INDEX IF NOT EXISTS idx_designs_like_count ON designs(like_count DESC)",

		// Purchase indexes
		"CREATE INDEX IF NOT EXISTS idx_purchases_buyer ON purchases(buyer_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchases_design ON purchases(design_id)",
		"CREATE INDEX IF NOT EXISTS idx_purchases_design_status ON purchases(design_id, status)",

		// Social edge lookups by target
		"CREATE INDEX IF NOT EXISTS idx_likes_design ON likes(design_id)",
		"CREATE INDEX IF NOT EXISTS idx_follows_artist ON follows(artist_id)",

		// Job indexes
		"CREATE INDEX IF NOT EXISTS idx_job_posts_poster ON job_posts(poster_id)",
		"CREATE INDEX IF NOT EXISTS idx_job_posts_status ON job_posts(status)",

		// Audit log indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user ON audit_logs(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	return nil
}
