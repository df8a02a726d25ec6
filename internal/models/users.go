package models

import "golang.org/x/crypto/bcrypt"

// Role is the user's role, fixed at registration.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// UserStatus is toggled by admins only.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// Valid reports whether s is active or blocked.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// User is the users table. Fields other than ID and Name are omitted from
// JSON when zero so that partial selects (a medicine's seller) stay small.
type User struct {
	Base
	Email        string     `gorm:"uniqueIndex;not null;size:191" json:"email,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Role         Role       `gorm:"type:varchar(16);not null;default:'CUSTOMER'" json:"role,omitempty"`
	Status       UserStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status,omitempty"`
}

// HashPassword turns a plaintext password into a salted bcrypt hash.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
