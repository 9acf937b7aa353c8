package models

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password       string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Role           string    `json:"role" gorm:"size:10;default:'user'"`
	Bio            string    `json:"bio"`
	AvatarPath     string    `json:"avatar_path"`
	FollowersCount int64     `json:"followers_count" gorm:"default:0"`
	FollowingCount int64     `json:"following_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the trimmed user shape embedded in feed/notification responses
type UserCompact struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	AvatarPath string `json:"avatar_path"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, AvatarPath: u.AvatarPath}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarPath string `json:"avatar_path,omitempty"`
}
