package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"perkline/internal/models"
	"perkline/internal/repositories"
)

// Scoring weights for the resolver. Additive, with the final score clamped
// to [0, MaxResolveScore]. The values are tuned constants; boundary tests
// assert against them directly.
const (
	IssuerMatchPoints    = 50.0
	WordOverlapMaxPoints = 30.0
	ExactSubstringPoints = 20.0
	SpecialKeywordPoints = 5.0
	MaxResolveScore      = 100
)

// specialKeywords are marketing tier names that strongly identify a product
// line. Only the first keyword found in both strings scores.
var specialKeywords = []string{
	"platinum",
	"sapphire",
	"venture",
	"aadvantage",
	"freedom",
	"reserve",
	"preferred",
	"premier",
	"prestige",
	"propel",
	"altitude",
	"gold",
}

type productResolverService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	aliases     IssuerAliasTable
	metrics     MetricsRecorderInterface
}

// NewProductResolverService creates a new ProductResolverServiceInterface instance
func NewProductResolverService(catalogRepo repositories.CatalogRepositoryInterface, aliases IssuerAliasTable, metrics MetricsRecorderInterface) ProductResolverServiceInterface {
	return &productResolverService{
		catalogRepo: catalogRepo,
		aliases:     aliases,
		metrics:     metrics,
	}
}

// ResolveProduct scores the active catalog against an observed account name.
// Malformed input never fails; empty strings simply accrue no points.
func (s *productResolverService) ResolveProduct(accountName, institutionName string) ([]ProductCandidate, error) {
	products, err := s.catalogRepo.ListActive()
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementCounter("resolver.resolved", map[string]string{"status": "error"})
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	normalizedAccount := NormalizeName(accountName)
	normalizedInstitution := NormalizeName(institutionName)

	candidates := make([]ProductCandidate, 0, len(products))
	for _, product := range products {
		score, reasons := s.scoreProduct(product, normalizedAccount, normalizedInstitution)
		candidates = append(candidates, ProductCandidate{
			Product: product,
			Score:   score,
			Reasons: reasons,
		})
	}

	// Catalog order is the tie-break, so the sort must be stable
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if s.metrics != nil {
		s.metrics.IncrementCounter("resolver.resolved", map[string]string{"status": "success"})
	}
	return candidates, nil
}

func (s *productResolverService) scoreProduct(product models.CardProduct, account, institution string) (int, []string) {
	normalizedIssuer := NormalizeName(product.IssuerName)
	normalizedProduct := NormalizeName(product.ProductName)

	var score float64
	var reasons []string

	// Unknown institution skips the issuer term entirely; no penalty
	if institution != "" && s.aliases.Matches(normalizedIssuer, institution) {
		score += IssuerMatchPoints
		reasons = append(reasons, "Issuer match")
	}

	if overlap, matched, total := WordOverlapScore(normalizedProduct, account, WordOverlapMaxPoints); matched > 0 {
		score += overlap
		reasons = append(reasons, fmt.Sprintf("Name overlap %d/%d words", matched, total))
	}

	if normalizedProduct != "" && strings.Contains(account, normalizedProduct) {
		score += ExactSubstringPoints
		reasons = append(reasons, "Exact substring")
	}

	for _, keyword := range specialKeywords {
		if strings.Contains(account, keyword) && strings.Contains(normalizedProduct, keyword) {
			score += SpecialKeywordPoints
			reasons = append(reasons, fmt.Sprintf("Keyword %q", keyword))
			break
		}
	}

	if score > MaxResolveScore {
		score = MaxResolveScore
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score)), reasons
}
