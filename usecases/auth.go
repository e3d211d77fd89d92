package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"houses-api/apperr"
	"houses-api/cache"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthUseCase struct {
	users  repositories.UserRepository
	cache  *cache.UserCache
	secret []byte
	ttl    time.Duration
	log    *logger.Logger
}

func NewAuthUseCase(users repositories.UserRepository, userCache *cache.UserCache, secret string, ttl time.Duration, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		cache:  userCache,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With("component", "auth"),
	}
}

// Register signs up a user or publisher and returns a token for them.
// Admins can only be created through CreateUser.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (string, *entities.User, error) {
	if in.Role == entities.RoleAdmin {
		return "", nil, apperr.Validation("role must be one of: user publisher")
	}
	user, err := uc.CreateUser(ctx, in)
	if err != nil {
		return "", nil, err
	}
	token, err := uc.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CreateUser stores a new user with a hashed password, any role allowed.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in RegisterInput) (*entities.User, error) {
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	user := &entities.User{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Role:  in.Role,
	}
	if user.Role == "" {
		user.Role = entities.RoleUser
	}
	if err := validateEntity(user); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	user.PasswordHash = string(hash)

	if err := uc.users.Create(ctx, nil, user); err != nil {
		return nil, translate(err, nil, func() error { return apperr.Conflict("Email %s is already registered", user.Email) })
	}
	uc.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks credentials and returns a fresh token.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperr.Validation("Please provide an email and password")
	}
	user, err := uc.users.GetByEmail(ctx, nil, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", apperr.Unexpected(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperr.Unauthorized("Invalid credentials")
	}
	return uc.IssueToken(user)
}

func (uc *AuthUseCase) IssueToken(user *entities.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", apperr.Unexpected(fmt.Errorf("sign token: %w", err))
	}
	return token, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (uc *AuthUseCase) Authenticate(ctx context.Context, tokenString string) (*entities.User, error) {
	if tokenString == "" {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return uc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Subject == "" {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}
	return uc.Me(ctx, claims.Subject)
}

// Me loads a user by id, served from the cache when possible.
func (uc *AuthUseCase) Me(ctx context.Context, id string) (*entities.User, error) {
	if uc.cache != nil {
		if u, ok := uc.cache.Get(id); ok {
			return u, nil
		}
	}
	user, err := uc.users.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Not authorized to access this route")
	}
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if uc.cache != nil {
		uc.cache.Set(user)
	}
	return user, nil
}

// SetRole changes the role of the user registered under email.
func (uc *AuthUseCase) SetRole(ctx context.Context, email, role string) (*entities.User, error) {
	user, err := uc.users.GetByEmail(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, translate(err, func() error { return apperr.NotFound("No user with email %s", email) }, nil)
	}
	user.Role = role
	if err := validateEntity(user); err != nil {
		return nil, err
	}
	if err := uc.users.UpdateRole(ctx, nil, user.ID, role); err != nil {
		return nil, translate(err, nil, nil)
	}
	if uc.cache != nil {
		uc.cache.Delete(user.ID)
	}
	return user, nil
}
