package service

import (
	"context"
	stderrors "errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"

	"canvaspilot.io/canvaspilot/internal/models"
)

// UserService handles account registration and credential checks. Token
// issuance lives in the transport layer; this service only proves the
// password matches.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Signup registers a new account. The login handle must be unique across
// all rows, deleted ones included, because the column carries a unique
// index.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*UserSummary, error) {
	var out UserSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("user_id = ?", req.UserID).Count(&count).Error; err != nil {
			return apperrors.ErrInternal(err, "check duplicate user id")
		}
		if count > 0 {
			return apperrors.ErrDuplicateUserID(req.UserID)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperrors.ErrInternal(err, "hash password")
		}

		u := models.User{
			UserID:   req.UserID,
			Username: req.Username,
			Email:    req.Email,
			Password: string(hash),
		}
		u.CreatedBy = req.UserID
		u.ModifiedBy = req.UserID
		if err := tx.Create(&u).Error; err != nil {
			return apperrors.ErrInternal(err, "create user")
		}
		out = userSummary(&u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticate verifies the handle/password pair and returns the account.
// Unknown handle and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, req LoginRequest) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", req.UserID, false).
		First(&u).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthorized(apperrors.CodeUnauthorized, "invalid credentials", "")
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err, "find user by handle")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, apperrors.Unauthorized(apperrors.CodeUnauthorized, "invalid credentials", "")
	}
	return &u, nil
}

// Get returns the public identity of a live account.
func (s *UserService) Get(ctx context.Context, id int64) (*UserSummary, error) {
	u, err := findUserByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	out := userSummary(u)
	return &out, nil
}
