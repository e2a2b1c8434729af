package domain

import "time"

type UserRole string

const (
	UserRoleGuest UserRole = "guest"
	UserRoleHost  UserRole = "host"
)

func ValidUserRole(s string) bool {
	return UserRole(s) == UserRoleGuest || UserRole(s) == UserRoleHost
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
