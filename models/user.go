package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePending Role = "pending" // registered through Google, awaiting approval
)

// User is a back-office account. Storefront buyers never sign in.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthID       string    `gorm:"index;size:128" json:"auth_id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName     string    `json:"full_name"`
	Picture      string    `json:"picture"`
	Role         Role      `gorm:"type:VARCHAR(20);not null" json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
