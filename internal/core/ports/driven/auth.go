package driven

import "github.com/custodia-labs/pdflab/internal/core/domain"

// AuthAdapter signs and verifies workspace session tokens.
// Storage of workspace state lives in WorkspaceStore.
type AuthAdapter interface {
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
