package database

import (
	"fmt"
	"log"
	"time"

	"perkline/internal/config"
	"perkline/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.CardProduct{},
		&models.Benefit{},
		&models.LinkedAccount{},
		&models.Transaction{},
		&models.TransactionMatch{},
		&models.ScanCursor{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_card_products_issuer_lower ON card_products(LOWER(issuer_name))",
		"CREATE INDEX IF NOT EXISTS idx_card_products_active ON card_products(active)",
		"CREATE INDEX IF NOT EXISTS idx_benefits_product_id ON benefits(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_benefits_active ON benefits(active)",
		"CREATE INDEX IF NOT EXISTS idx_linked_accounts_user_id ON linked_accounts(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_linked_accounts_product_id ON linked_accounts(product_id) WHERE product_id IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_linked_accounts_deleted_at ON linked_accounts(deleted_at) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)",
		// Composite index backing the cursor window query ordering
		"CREATE INDEX IF NOT EXISTS idx_transactions_posted_at_id ON transactions(posted_at, id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_transaction_id ON transaction_matches(transaction_id)",
		"CREATE INDEX IF NOT EXISTS idx_matches_benefit_account ON transaction_matches(benefit_id, account_id)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Run SQL-based migrations using golang-migrate if enabled
	if err := RunMigrationsIfEnabled(sqlDB); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	log.Println("Database initialized successfully")

	return db.DB, nil
}
