package database

import (
	"fmt"
	"testing"
	"time"

	"perkline/internal/config"
	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transaction_matches",
		"scan_cursors",
		"transactions",
		"linked_accounts",
		"benefits",
		"card_products",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}

	sqlDB, err := db.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// CreateTestProduct creates a catalog product with a single capped monthly benefit
func CreateTestProduct(t *testing.T, db *DB, issuer, name string) *models.CardProduct {
	t.Helper()

	maxAmount := decimal.NewFromInt(25)
	product := &models.CardProduct{
		IssuerName:  issuer,
		ProductName: name,
		Active:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	benefit := &models.Benefit{
		ProductID: product.ID,
		Name:      "Dining Credit",
		Timing:    models.BenefitTimingMonthly,
		MaxAmount: &maxAmount,
		Keywords:  models.StringList{"grubhub", "doordash"},
		Active:    true,
	}
	if err := db.Create(benefit).Error; err != nil {
		t.Fatalf("failed to create test benefit: %v", err)
	}
	product.Benefits = []models.Benefit{*benefit}

	return product
}

// CreateTestAccount creates a linked account, optionally associated to a product
func CreateTestAccount(t *testing.T, db *DB, userID uuid.UUID, productID *uuid.UUID) *models.LinkedAccount {
	t.Helper()

	account := &models.LinkedAccount{
		UserID:          userID,
		InstitutionName: "Chase",
		DisplayName:     "Sapphire Reserve",
		ProductID:       productID,
		Status:          models.LinkedAccountStatusActive,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction on an account
func CreateTestTransaction(t *testing.T, db *DB, accountID uuid.UUID, description string, amount decimal.Decimal, postedAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		PostedAt:    postedAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
