package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "sei_backend/internals/features/users/auth/model"
	userModel "sei_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&userModel.UserModel{}).Count(&n).Error
	return n, err
}

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, user *userModel.UserModel) error {
	user.Email = NormalizeEmail(user.Email)
	return db.WithContext(ctx).Create(user).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hashed string) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

/* ====================== TOKEN BLACKLIST ====================== */

// Only the HMAC of the token is stored, never the bearer itself.
func hashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// BlacklistToken is idempotent; re-blacklisting refreshes expired_at.
func BlacklistToken(ctx context.Context, db *gorm.DB, raw, secret string, expiresAt time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     hashToken(raw, secret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&row).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, raw, secret string, now time.Time) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hashToken(raw, secret), now.UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpiredBlacklist removes rows that expired before `before`.
func PurgeExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at < ?", before.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
