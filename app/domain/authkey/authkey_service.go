package authkey

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

const (
	// Admin principals get a longer-lived key than regular ones.
	RegularKeyTTL = 90 * 24 * time.Hour
	AdminKeyTTL   = 365 * 24 * time.Hour
)

// signingMethods pins the accepted algorithm. Tokens asserting "none" or
// anything other than HS256 are rejected before signature verification.
var signingMethods = []string{jwt.SigningMethodHS256.Alg()}

type AuthKeyService struct {
	userRepo user.UserRepository
}

func NewService(userRepo user.UserRepository) *AuthKeyService {
	return &AuthKeyService{userRepo: userRepo}
}

// GenerateKey issues a signed API key for the user carrying their current
// key version.
func (s *AuthKeyService) GenerateKey(u *user.User) (string, error) {
	ttl := RegularKeyTTL
	if u.Admin {
		ttl = AdminKeyTTL
	}
	now := time.Now()
	claims := ApiKeyClaims{
		Name:          u.Name,
		Email:         u.Email,
		ApiKeyVersion: u.ApiKeyVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(environment_variables.EnvironmentVariables.JWT_SECRET)
}

// ValidateKey verifies the token and returns the owning user. Every
// failure mode — malformed token, bad signature, wrong algorithm, expiry,
// unknown user, stale version — collapses to ok=false; the reason stays in
// the logs so callers cannot probe which users exist.
func (s *AuthKeyService) ValidateKey(ctx context.Context, tokenString string) (*user.User, bool) {
	log := logger.GetLogger()

	token, err := jwt.ParseWithClaims(tokenString, &ApiKeyClaims{}, func(token *jwt.Token) (interface{}, error) {
		return environment_variables.EnvironmentVariables.JWT_SECRET, nil
	}, jwt.WithValidMethods(signingMethods))
	if err != nil || !token.Valid {
		log.Debugf("api key rejected: %v", err)
		return nil, false
	}
	claims, ok := token.Claims.(*ApiKeyClaims)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		log.Debugf("api key rejected: bad subject %q", claims.Subject)
		return nil, false
	}
	u, err := s.userRepo.FindByID(ctx, uint(id))
	if err != nil || u == nil {
		log.Debugf("api key rejected: no user %d", id)
		return nil, false
	}
	if u.Deleted {
		log.Debugf("api key rejected: user %d deleted", id)
		return nil, false
	}
	if claims.ApiKeyVersion != u.ApiKeyVersion {
		log.Debugf("api key rejected: user %d version %d, token version %d",
			id, u.ApiKeyVersion, claims.ApiKeyVersion)
		return nil, false
	}
	return u, true
}

// RegenerateKey bumps the user's key version and issues a token carrying
// the new version. The increment is a single storage-level update, so a
// token issued one version behind a concurrent regeneration validates
// against the post-increment version and dies.
func (s *AuthKeyService) RegenerateKey(ctx context.Context, userID uint) (string, error) {
	version, err := s.userRepo.IncrementKeyVersion(ctx, userID)
	if err != nil {
		return "", err
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	u.ApiKeyVersion = version
	return s.GenerateKey(u)
}
