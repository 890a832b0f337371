package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

type AuthService struct {
	owner  *domain.OwnerCredential
	tokens *TokenService
}

func NewAuthService(owner *domain.OwnerCredential, tokens *TokenService) *AuthService {
	return &AuthService{
		owner:  owner,
		tokens: tokens,
	}
}

type LoginInput struct {
	Password string
}

// Login exchanges the owner password for an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := s.owner.CheckPassword(input.Password); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(domain.OwnerSubject)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to issue token: %w", err)
	}

	return token, nil
}
