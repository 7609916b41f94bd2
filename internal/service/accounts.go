// Package service holds the account and island operations behind the HTTP
// handlers. Every classified failure is a *domain.Error.
package service

import (
	"context"                 // Request scoped DB calls
	"errors"                  // Error comparison
	"fmt"                     // Error wrapping
	"islands/internal/domain" // Importing domain models
	"islands/internal/utils"  // Name capitalisation
	"strings"                 // Email case folding

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// AccountInput is the full set of user editable fields
type AccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Accounts manages user records
type Accounts struct {
	db       *gorm.DB
	hashCost int
}

// NewAccounts returns an account service hashing with bcrypt.DefaultCost
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func (s *Accounts) WithHashCost(cost int) *Accounts {
	s.hashCost = cost
	return s
}

// Signup stores a new user with capitalised names, a lowercase email and a hashed password.
// An email already registered in any case returns ErrDuplicateEmail.
func (s *Accounts) Signup(ctx context.Context, in AccountInput) (*domain.User, error) {
	email := strings.ToLower(in.Email)

	taken, err := s.emailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName: utils.Capitalize(in.FirstName),
		LastName:  utils.Capitalize(in.LastName),
		Email:     email,
		Password:  hash,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login returns the user owning email when password matches its hash
func (s *Accounts) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrPasswordMismatch
	}
	return &user, nil
}

// User loads one user by ID
func (s *Accounts) User(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateSettings overwrites all four fields of the user, there is no partial update.
func (s *Accounts) UpdateSettings(ctx context.Context, id uint, in AccountInput) (*domain.User, error) {
	user, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(in.Email)
	taken, err := s.emailTaken(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user.FirstName = utils.Capitalize(in.FirstName)
	user.LastName = utils.Capitalize(in.LastName)
	user.Email = email
	user.Password = hash
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("save user %d: %w", id, err)
	}
	return user, nil
}

// DeleteAccount removes the user once confirmed
func (s *Accounts) DeleteAccount(ctx context.Context, id uint, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmAccount
	}
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDeleteFailed
	}
	return nil
}

// emailTaken reports whether another user (id != exceptID) owns email
func (s *Accounts) emailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (s *Accounts) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
