package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an author and reader account. Users are never hard-deleted.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email,omitempty" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-"` // bcrypt hash
	Name        string    `json:"name" gorm:"not null"`
	Bio         *string   `json:"bio"`
	Image       *string   `json:"image"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserCounts summarises a profile's activity.
type UserCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// UserProfile is the public view of a user as seen by a (possibly anonymous) viewer.
type UserProfile struct {
	User
	Counts      UserCounts `json:"counts"`
	IsFollowing bool       `json:"isFollowing"`
}

// UserSearchResult annotates a user with counts for search listings.
type UserSearchResult struct {
	User
	Counts UserCounts `json:"counts"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest exchanges a Firebase ID token for a local token.
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest patches the caller's profile. Nil fields are left untouched;
// an empty Image clears the stored image.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=2,max=50"`
	Bio   *string `json:"bio" validate:"omitnil,max=500"`
	Image *string `json:"image" validate:"omitnil,eq=|url"`
}

// AuthResponse is returned by signup and every login flavour.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
