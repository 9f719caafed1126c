package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assettrack/internal/config"
	"assettrack/internal/dao"
	"assettrack/internal/errs"
	"assettrack/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const defaultTokenTTL = 24 * time.Hour

// Claims are carried by every access token.
type Claims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	cfg   *config.Config
	users dao.UserRepository
	log   zerolog.Logger
}

func NewAuthService(cfg *config.Config, users dao.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{cfg: cfg, users: users, log: log}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	cost := s.cfg.Security.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Authenticate verifies credentials and returns the user. Only active users
// can sign in.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errs.IsInvalidArgument(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GenerateToken signs an access token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.JWT.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = defaultTokenTTL
	}

	now := time.Now()
	expiresAt := now.Add(expiresIn)
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			Issuer:    s.cfg.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates a signed token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.JWT.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserFromToken validates tokenString and loads the user it was issued to.
// Tokens of users that were deactivated or removed since are rejected.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errs.IsInvalidArgument(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// CreateDefaultUser creates the configured administrator when the users table
// is empty.
func (s *AuthService) CreateDefaultUser(ctx context.Context) error {
	existing, err := s.users.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	d := s.cfg.DefaultUser
	if d.Email == "" || d.Password == "" {
		s.log.Warn().Msg("no users exist and no default user is configured")
		return nil
	}

	hash, err := s.HashPassword(d.Password)
	if err != nil {
		return err
	}
	role := models.Role(d.Role)
	if !role.Valid() {
		role = models.RoleAdmin
	}

	user, err := s.users.Create(ctx, &models.User{
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Phone:        d.Phone,
		Email:        d.Email,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("default user created")
	return nil
}
