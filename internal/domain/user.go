package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AccountStatus tracks whether an account may log in.
type AccountStatus string

const (
	StatusActive     AccountStatus = "active"
	StatusSuspended  AccountStatus = "suspended"
	StatusUnverified AccountStatus = "unverified"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("password must be at least 8 characters and contain a digit and a special character")
	ErrHashingFailed   = errors.New("failed to hash password")
)

// local-part@domain.tld, TLD 2-64 letters
var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,64}$`)

const (
	minPasswordLength = 8
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
)

// User holds one account's login identity.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Status       AccountStatus      `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidateEmail reports whether email looks like local-part@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword reports whether password has at least 8 characters,
// one decimal digit and one special character.
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	hasDigit := strings.IndexFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
	hasSpecial := strings.ContainsAny(password, passwordSpecials)
	return hasDigit && hasSpecial
}

// SetPassword stores the bcrypt hash of password. It does not validate the format.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateCredentials replaces email and password together. If either value
// fails validation, or hashing fails, the user is left untouched.
func (u *User) UpdateCredentials(newEmail, newPassword string) error {
	if !ValidateEmail(newEmail) {
		return ErrInvalidEmail
	}
	if !ValidatePassword(newPassword) {
		return ErrInvalidPassword
	}

	// Hash into a scratch copy so a failure cannot leave a half-written user
	scratch := User{}
	if err := scratch.SetPassword(newPassword); err != nil {
		return err
	}

	u.Email = NormalizeEmail(newEmail)
	u.PasswordHash = scratch.PasswordHash
	return nil
}

// IsAccountActive reports whether the account may log in.
func (u *User) IsAccountActive() bool {
	return u.Status == StatusActive
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
