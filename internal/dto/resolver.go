package dto

import (
	"perkline/internal/services"

	"github.com/google/uuid"
)

// ProductCandidateResponse is one ranked resolver candidate on the wire
type ProductCandidateResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	IssuerName  string    `json:"issuer_name"`
	ProductName string    `json:"product_name"`
	Score       int       `json:"score"`
	Reasons     []string  `json:"reasons"`
}

// ResolveResponse carries resolver candidates for one account
type ResolveResponse struct {
	AccountID  uuid.UUID                  `json:"account_id"`
	Candidates []ProductCandidateResponse `json:"candidates"`
}

// NewResolveResponse converts resolver candidates into their wire form
func NewResolveResponse(accountID uuid.UUID, candidates []services.ProductCandidate) ResolveResponse {
	out := make([]ProductCandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ProductCandidateResponse{
			ProductID:   c.Product.ID,
			IssuerName:  c.Product.IssuerName,
			ProductName: c.Product.ProductName,
			Score:       c.Score,
			Reasons:     c.Reasons,
		})
	}
	return ResolveResponse{AccountID: accountID, Candidates: out}
}
