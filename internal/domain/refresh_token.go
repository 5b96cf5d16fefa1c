package domain

import "time"

// RefreshToken is one entry in a user's set of currently valid refresh
// tokens. The signed token string itself is stored: validity requires both a
// good signature and presence of this row, so a cryptographically valid token
// that is missing here signals reuse of a rotated-out credential.
type RefreshToken struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"index;not null"`
	User   User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
