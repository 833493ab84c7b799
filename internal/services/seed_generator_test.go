package services

import (
	"testing"

	"perkline/internal/database"
	"perkline/internal/models"
	"perkline/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// SeedGeneratorSuite defines the test suite for the dev seeder
type SeedGeneratorSuite struct {
	suite.Suite
	db              *database.DB
	generator       SeedGeneratorInterface
	transactionRepo repositories.TransactionRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *SeedGeneratorSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	catalogRepo := repositories.NewCatalogRepository(s.db.DB)
	accountRepo := repositories.NewLinkedAccountRepository(s.db.DB)
	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	s.generator = NewSeedGenerator(catalogRepo, accountRepo, s.transactionRepo)
}

// TearDownTest runs after each test in the suite
func (s *SeedGeneratorSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestSeedGeneratorSuite runs the test suite
func TestSeedGeneratorSuite(t *testing.T) {
	suite.Run(t, new(SeedGeneratorSuite))
}

func (s *SeedGeneratorSuite) TestSeedCatalog() {
	products, err := s.generator.SeedCatalog(3)
	s.NoError(err)
	s.Len(products, 3)

	for _, product := range products {
		s.NotEmpty(product.IssuerName)
		s.NotEmpty(product.Benefits)
		for _, benefit := range product.Benefits {
			s.True(models.IsValidBenefitTiming(benefit.Timing))
			s.NotEmpty(benefit.Keywords)
		}
	}
}

func (s *SeedGeneratorSuite) TestSeedCatalog_SkipsExisting() {
	_, err := s.generator.SeedCatalog(3)
	s.Require().NoError(err)

	again, err := s.generator.SeedCatalog(3)
	s.NoError(err)
	s.Empty(again)
}

func (s *SeedGeneratorSuite) TestSeedUserData() {
	_, err := s.generator.SeedCatalog(0)
	s.Require().NoError(err)

	userID := uuid.New()
	accounts, err := s.generator.SeedUserData(userID, 2, 10)
	s.NoError(err)
	s.Require().Len(accounts, 2)

	for _, account := range accounts {
		s.Equal(userID, account.UserID)
		s.NotNil(account.ProductID)
	}

	transactions, err := s.transactionRepo.GetByUserSince(userID, models.ScanKey{}, 0)
	s.NoError(err)
	s.Len(transactions, 20)
}
