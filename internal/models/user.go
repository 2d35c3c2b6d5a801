package models

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Preferences is stored as a JSON column on the user row.
type Preferences struct {
	Currency string `json:"currency"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{Currency: "USD", Language: "en", Theme: ThemeAuto}
}

// User is a registrant. Email is stored lowercased and trimmed; the unique
// index on it is what resolves concurrent registrations for the same address.
// A user with EmailVerified == false holds a pending OTP and cannot log in.
type User struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"not null" json:"name"`
	Email          string      `gorm:"uniqueIndex:uidx_users_email;not null" json:"email"`
	PasswordHash   string      `gorm:"not null" json:"-"`
	GoogleID       *string     `gorm:"uniqueIndex:uidx_users_google_id" json:"-"`
	EmailVerified  bool        `gorm:"not null;default:false" json:"emailVerified"`
	OTP            string      `gorm:"not null;default:''" json:"-"`
	OTPExpiresAt   *time.Time  `json:"-"`
	ProfilePicture string      `gorm:"not null;default:''" json:"profilePicture"`
	Preferences    Preferences `gorm:"serializer:json" json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// HasPendingOTP reports whether a verification code is outstanding at the
// given instant.
func (user *User) HasPendingOTP(now time.Time) bool {
	return !user.EmailVerified && user.OTP != "" && user.OTPExpiresAt != nil && user.OTPExpiresAt.After(now)
}

// OwnerSummary is the minimal projection of a trip owner exposed on public
// trip listings.
type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
