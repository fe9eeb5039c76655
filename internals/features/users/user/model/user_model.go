package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
)

// UserModel is a dashboard account.
type UserModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Role      constants.Role `gorm:"type:varchar(20);not null;default:'guest'" json:"role"`
	AvatarURL *string        `gorm:"type:text" json:"avatarUrl,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleGuest
	}
	return nil
}
