package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Service validates the access key and hands out tokens.
type Service struct {
	accessKeyHash  string
	tokenGenerator TokenGenerator
}

func NewService(accessKeyHash string, tokenGen TokenGenerator) *Service {
	return &Service{
		accessKeyHash:  accessKeyHash,
		tokenGenerator: tokenGen,
	}
}

// Authenticate compares the presented access key against the configured
// bcrypt hash and returns a token pair on success.
func (s *Service) Authenticate(dto TokenRequestDTO) (Tokens, error) {
	if err := dto.Validate(); err != nil {
		return Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.accessKeyHash), []byte(dto.AccessKey)); err != nil {
		return Tokens{}, ErrInvalidAccessKey
	}

	return s.issueTokens()
}

// RefreshTokens validates a refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (Tokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return Tokens{}, err
	}
	if claims.Scope != scopeRefresh {
		return Tokens{}, ErrInvalidToken
	}

	return s.issueTokens()
}

// ValidateAccessToken verifies a token presented on an API request.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Scope != scopeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) issueTokens() (Tokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken()
	if err != nil {
		return Tokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken()
	if err != nil {
		return Tokens{}, err
	}

	return Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// HashAccessKey creates the bcrypt hash that goes into the config file.
func HashAccessKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
