package services

import (
	"fmt"
	"math/rand"
	"time"

	"perkline/internal/models"
	"perkline/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seedProduct is a realistic catalog template the dev seeder draws from
type seedProduct struct {
	issuer   string
	name     string
	benefits []seedBenefit
}

type seedBenefit struct {
	name      string
	timing    string
	maxAmount string
	keywords  []string
}

var seedCatalogTemplates = []seedProduct{
	{
		issuer: "Chase",
		name:   "Sapphire Reserve",
		benefits: []seedBenefit{
			{"Travel Credit", models.BenefitTimingAnnual, "300", []string{"airline", "hotel", "travel"}},
			{"DoorDash Credit", models.BenefitTimingMonthly, "5", []string{"doordash"}},
		},
	},
	{
		issuer: "American Express",
		name:   "Platinum Card",
		benefits: []seedBenefit{
			{"Airline Fee Credit", models.BenefitTimingAnnual, "200", []string{"airline", "baggage"}},
			{"Uber Cash", models.BenefitTimingMonthly, "15", []string{"uber"}},
			{"Digital Entertainment Credit", models.BenefitTimingMonthly, "20", []string{"hulu", "disney", "peacock"}},
		},
	},
	{
		issuer: "American Express",
		name:   "Gold Card",
		benefits: []seedBenefit{
			{"Dining Credit", models.BenefitTimingMonthly, "10", []string{"grubhub", "cheesecake factory", "goldbelly"}},
			{"Uber Cash", models.BenefitTimingMonthly, "10", []string{"uber"}},
		},
	},
	{
		issuer: "Capital One",
		name:   "Venture X",
		benefits: []seedBenefit{
			{"Travel Credit", models.BenefitTimingAnnual, "300", []string{"capital one travel"}},
		},
	},
	{
		issuer: "Citi",
		name:   "Prestige",
		benefits: []seedBenefit{
			{"Travel Credit", models.BenefitTimingSemiAnnual, "250", []string{"airline", "hotel"}},
		},
	},
}

// seedMerchants are transaction texts that hit the templates' keywords,
// mixed with noise that should stay unmatched.
var seedMerchants = []string{
	"DOORDASH*ORDER",
	"UBER TRIP",
	"UBER EATS",
	"GRUBHUB SEAMLESS",
	"DELTA AIRLINE TICKETS",
	"MARRIOTT HOTEL",
	"HULU SUBSCRIPTION",
	"WALMART SUPERCENTER",
	"SHELL OIL",
	"STARBUCKS",
	"TRADER JOES",
	"NETFLIX.COM",
}

type seedGenerator struct {
	catalogRepo     repositories.CatalogRepositoryInterface
	accountRepo     repositories.LinkedAccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	faker           *gofakeit.Faker
	rng             *rand.Rand
}

// NewSeedGenerator creates a new SeedGeneratorInterface instance
func NewSeedGenerator(
	catalogRepo repositories.CatalogRepositoryInterface,
	accountRepo repositories.LinkedAccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
) SeedGeneratorInterface {
	seed := time.Now().UnixNano()
	return &seedGenerator{
		catalogRepo:     catalogRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		faker:           gofakeit.New(uint64(seed)),
		rng:             rand.New(rand.NewSource(seed)),
	}
}

// SeedCatalog creates up to productCount products from the built-in
// templates, skipping ones that already exist.
func (g *seedGenerator) SeedCatalog(productCount int) ([]models.CardProduct, error) {
	if productCount <= 0 || productCount > len(seedCatalogTemplates) {
		productCount = len(seedCatalogTemplates)
	}

	created := make([]models.CardProduct, 0, productCount)
	for _, template := range seedCatalogTemplates[:productCount] {
		exists, err := g.catalogRepo.ExistsByIssuerAndName(template.issuer, template.name)
		if err != nil {
			return nil, fmt.Errorf("failed to check seed product: %w", err)
		}
		if exists {
			continue
		}

		product := models.CardProduct{
			IssuerName:  template.issuer,
			ProductName: template.name,
			Active:      true,
		}
		benefits := make([]models.Benefit, 0, len(template.benefits))
		for _, b := range template.benefits {
			maxAmount, err := decimal.NewFromString(b.maxAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to parse seed amount: %w", err)
			}
			benefits = append(benefits, models.Benefit{
				Name:      b.name,
				Timing:    b.timing,
				MaxAmount: &maxAmount,
				Keywords:  models.StringList(b.keywords),
				Active:    true,
			})
		}

		if err := g.catalogRepo.CreateWithBenefits(&product, benefits); err != nil {
			return nil, fmt.Errorf("failed to create seed product: %w", err)
		}
		created = append(created, product)
	}
	return created, nil
}

// SeedUserData creates linked accounts with recent transactions for a user,
// associating each account to a random seeded product.
func (g *seedGenerator) SeedUserData(userID uuid.UUID, accountCount, transactionsPerAccount int) ([]models.LinkedAccount, error) {
	products, err := g.catalogRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for seeding: %w", err)
	}

	accounts := make([]models.LinkedAccount, 0, accountCount)
	for i := 0; i < accountCount; i++ {
		account := models.LinkedAccount{
			UserID:          userID,
			InstitutionName: g.faker.Company(),
			DisplayName:     g.faker.CreditCardType() + " Card",
			Mask:            fmt.Sprintf("%04d", g.rng.Intn(10000)),
			Status:          models.LinkedAccountStatusActive,
		}
		if len(products) > 0 {
			product := products[g.rng.Intn(len(products))]
			account.InstitutionName = product.IssuerName
			account.DisplayName = product.ProductName
			account.ProductID = &product.ID
		}
		if err := g.accountRepo.Create(&account); err != nil {
			return nil, fmt.Errorf("failed to create seed account: %w", err)
		}

		transactions := make([]models.Transaction, 0, transactionsPerAccount)
		now := time.Now().UTC()
		for j := 0; j < transactionsPerAccount; j++ {
			merchant := seedMerchants[g.rng.Intn(len(seedMerchants))]
			amount := decimal.NewFromFloat(g.faker.Price(3, 250)).Round(2)
			postedAt := now.Add(-time.Duration(g.rng.Intn(90*24)) * time.Hour)
			transactions = append(transactions, models.Transaction{
				AccountID:    account.ID,
				Amount:       amount,
				Description:  merchant,
				MerchantName: merchant,
				PostedAt:     postedAt,
			})
		}
		if err := g.transactionRepo.CreateBatch(transactions); err != nil {
			return nil, fmt.Errorf("failed to create seed transactions: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
