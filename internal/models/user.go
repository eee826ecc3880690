package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Role values stored on User.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	FirstName      string         `json:"first_name" gorm:"size:100"`
	LastName       string         `json:"last_name" gorm:"size:100"`
	Email          string         `json:"email" gorm:"size:255;uniqueIndex:idx_users_email,where:deleted_at IS NULL AND email <> ''"`
	Password       string         `json:"-"` // bcrypt hash
	PhoneNumber    string         `json:"phone_number" gorm:"size:20;index"`
	Gender         int            `json:"gender"`
	RelationStatus *int           `json:"relation_status,omitempty"`
	Avatar         string         `json:"avatar"`
	Role           string         `json:"role" gorm:"size:20;default:'user'"`
	Bio            string         `json:"bio"`
	Hobbies        string         `json:"hobbies"`
	Address        string         `json:"address"`
	CityID         *uint          `json:"city_id,omitempty" gorm:"index"`
	CountryID      *uint          `json:"country_id,omitempty" gorm:"index"`
	BirthDate      *time.Time     `json:"birth_date,omitempty"`
	FirebaseUID    *string        `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	City    *City    `json:"-" gorm:"foreignKey:CityID"`
	Country *Country `json:"-" gorm:"foreignKey:CountryID"`
}

// FullName joins first and last name the way every listing shows a user.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserCompact is the short profile embedded in lists (friends, suggestions, feed authors).
type UserCompact struct {
	UserID   uint   `json:"userId"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{UserID: u.ID, UserName: u.FullName(), Avatar: u.Avatar}
}

type SignupRequest struct {
	FirstName   string `json:"first_name" form:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" form:"last_name" validate:"required,min=1,max=50"`
	Email       string `json:"email" form:"email" validate:"required,appemail"`
	Password    string `json:"password" form:"password" validate:"required,password"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required,min=7,max=20"`
	Gender      int    `json:"gender" form:"gender" validate:"min=0,max=3"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	FirstName      string     `json:"first_name,omitempty" form:"first_name" validate:"omitempty,min=2,max=50"`
	LastName       string     `json:"last_name,omitempty" form:"last_name" validate:"omitempty,min=1,max=50"`
	Email          string     `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	PhoneNumber    string     `json:"phone_number,omitempty" form:"phone_number" validate:"omitempty,min=7,max=20"`
	Bio            string     `json:"bio,omitempty" form:"bio" validate:"omitempty,max=500"`
	Hobbies        string     `json:"hobbies,omitempty" form:"hobbies" validate:"omitempty,max=255"`
	Address        string     `json:"address,omitempty" form:"address" validate:"omitempty,max=255"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	RelationStatus *int       `json:"relation_status,omitempty" validate:"omitempty,min=0,max=5"`
	CityID         *uint      `json:"city_id,omitempty"`
	CountryID      *uint      `json:"country_id,omitempty"`
}

type ResetPasswordRequest struct {
	UserID      uint   `json:"userId" validate:"required"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"updatedPassword"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
