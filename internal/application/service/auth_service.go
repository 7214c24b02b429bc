package service

import (
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/restodesk/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates POS terminals. Terminals share one provisioning
// secret; a successful login yields a JWT bound to the terminal code and
// cashier name.
type AuthService struct {
	jwtManager *utils.JWTManager
	secretHash string
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service. secretHash is the bcrypt hash
// of the terminal provisioning secret.
func NewAuthService(jwtManager *utils.JWTManager, secretHash string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		jwtManager: jwtManager,
		secretHash: secretHash,
		logger:     logger,
	}
}

// Login verifies the terminal secret and issues an access token
func (s *AuthService) Login(terminalCode, cashier, secret string) (string, error) {
	if terminalCode == "" {
		return "", apperror.NewBadRequestError("Terminal code is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(secret)); err != nil {
		s.logger.WithField("terminal", terminalCode).Warn("terminal login rejected")
		return "", apperror.ErrUnauthorized
	}

	token, err := s.jwtManager.GenerateAccessToken(terminalCode, cashier)
	if err != nil {
		s.logger.WithError(err).Error("failed to generate access token")
		return "", apperror.ErrInternalServer
	}
	return token, nil
}
