package domain

import "time"

// Numeric role codes carried inside tokens and stored on the user record.
const (
	RoleAdmin  = 2000
	RoleUser   = 2001
	RoleEditor = 2003
)

type User struct {
	ID           int64  `json:"_id" gorm:"primaryKey"`
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Roles        []int  `json:"roles" gorm:"serializer:json"`

	// EmailActive flips once the activation link is followed; Active is the
	// soft-delete flag. Lookups by email only ever see users with both true.
	EmailActive bool `json:"email_active" gorm:"default:false"`
	Active      bool `json:"active" gorm:"default:true"`

	ResetTokenHash      *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicUser is the sanitized shape sent alongside every issued token pair.
// Password hash and stored refresh tokens never leave the server.
type PublicUser struct {
	ID    int64  `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []int  `json:"roles"`
}

func (u *User) Public() PublicUser {
	roles := u.Roles
	if len(roles) == 0 {
		roles = []int{RoleUser}
	}
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: roles,
	}
}

func (u *User) HasValidResetToken(now time.Time) bool {
	return u.ResetTokenHash != nil &&
		u.ResetTokenExpiresAt != nil &&
		u.ResetTokenExpiresAt.After(now)
}
