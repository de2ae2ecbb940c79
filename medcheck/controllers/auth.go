package controllers

import (
	"context"
	"fmt"
	"time"

	"medcheck/medcheck/config"
	"medcheck/medcheck/errs"
	"medcheck/medcheck/sources/psql/models"
	"medcheck/medcheck/utils/types"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the data store the auth controller needs.
// GetUserByEmail returns (nil, nil) for an unknown address.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type AuthController struct {
	users UserStore
	cfg   config.Config
}

func NewAuthController(users UserStore, cfg config.Config) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

// Signup creates an account with a bcrypt hash of the password. The email
// must be unused; uniqueness is checked by lookup before insert and backed
// by the unique column.
func (c *AuthController) Signup(ctx context.Context, req types.SignupRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", errs.ErrValidation)
	}
	existing, err := c.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: user with this email already exists", errs.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		Age:          req.Age,
	}
	return c.users.CreateUser(ctx, user)
}

// Login verifies the credentials and returns the user's name, email and a
// signed session token. A missing account and a wrong password produce the
// same error.
func (c *AuthController) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrAuth
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrAuth
	}

	claims := jwt.MapClaims{
		"sub":  user.Email,
		"name": user.Name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{Name: user.Name, Email: user.Email, Token: signed}, nil
}
