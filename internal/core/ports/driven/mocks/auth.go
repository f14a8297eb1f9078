package mocks

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// MockAuthAdapter is a mock implementation of AuthAdapter for testing.
// Tokens are the session ID with a fixed prefix.
type MockAuthAdapter struct{}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return fmt.Sprintf("token-%s", claims.SessionID), nil
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	id, ok := strings.CutPrefix(token, "token-")
	if !ok || id == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{SessionID: id}, nil
}
