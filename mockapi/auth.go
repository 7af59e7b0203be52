package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/config"
	"github.com/user/snsclone-go/models"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// CustomClaims are the JWT claims issued by the mock backend.
type CustomClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// authService registers accounts and issues tokens.
type authService struct {
	store  *memoryStore
	cfg    *config.MockConfig
	logger *zap.Logger
	// bcryptCost is lowered in tests; production uses bcrypt.DefaultCost.
	bcryptCost int
}

func (s *authService) register(cred models.Credential) (*account, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(cred.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}
	return s.store.createAccount(cred.Email, string(hashed))
}

func (s *authService) login(cred models.Credential) (models.TokenPair, error) {
	acc, ok := s.store.accountByEmail(cred.Email)
	if !ok {
		return models.TokenPair{}, apperror.NewAuthError("invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.HashedPassword), []byte(cred.Password)); err != nil {
		return models.TokenPair{}, apperror.NewAuthError("invalid credentials", nil)
	}

	access, err := s.generateToken(acc.ID, tokenTypeAccess, s.cfg.AccessTokenDuration)
	if err != nil {
		return models.TokenPair{}, apperror.NewInternalError("failed to generate access token", err)
	}
	refresh, err := s.generateToken(acc.ID, tokenTypeRefresh, s.cfg.RefreshTokenDuration)
	if err != nil {
		return models.TokenPair{}, apperror.NewInternalError("failed to generate refresh token", err)
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) generateToken(userID int64, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "snsclone-mock",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// validateToken parses and verifies tokenString. Expiry is checked by the jwt parser.
func (s *authService) validateToken(tokenString, expectedType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing")
	}
	return claims, nil
}

func decodeCredential(r *http.Request) (models.Credential, error) {
	var cred models.Credential
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		return cred, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil)
	}
	if strings.TrimSpace(cred.Email) == "" || cred.Password == "" {
		return cred, apperror.NewBadRequestError("email and password are required", nil)
	}
	return cred, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	cred, err := decodeCredential(r)
	if err != nil {
		writeError(w, err)
		return
	}

	acc, err := s.auth.register(cred)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("account registered", zap.Int64("account", acc.ID))
	writeJSON(w, http.StatusCreated, models.Account{ID: acc.ID, Email: acc.Email})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	cred, err := decodeCredential(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tokens, err := s.auth.login(cred)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
