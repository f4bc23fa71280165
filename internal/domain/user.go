package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleConsultant = "consultant"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// ValidRole informa se o papel é um dos três conhecidos
func ValidRole(role string) bool {
	return role == RoleConsultant || role == RoleManager || role == RoleAdmin
}

type User struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	ManagerUID   *string    `json:"manager_uid"`
	Active       bool       `json:"active"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	UID        string  `json:"uid"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	ManagerUID *string `json:"manager_uid"`
	Active     *bool   `json:"active"`
	Deleted    *bool   `json:"deleted"`
}

type Claims struct {
	UserUID    string
	UserName   string
	UserEmail  string
	UserActive bool
	UserRole   string
	ManagerUID *string
	jwt.RegisteredClaims
}
