package auth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// A short list of passwords seen constantly in credential dumps. Not
// exhaustive, but catches the worst offenders before bcrypt ever runs.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"letmein1":    {},
	"iloveyou":    {},
	"welcome1":    {},
	"admin123":    {},
	"abc12345":    {},
	"sunshine":    {},
	"football":    {},
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword enforces the account password policy:
// minimum length, not entirely numeric, not a known-common password,
// and not trivially similar to the username or email.
func ValidatePassword(password, username, email string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if isAllDigits(password) {
		return fmt.Errorf("password cannot be entirely numeric")
	}
	if _, found := commonPasswords[strings.ToLower(password)]; found {
		return fmt.Errorf("password is too common")
	}
	if similarToIdentity(password, username) || similarToIdentity(password, email) {
		return fmt.Errorf("password is too similar to your username or email")
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return len(s) > 0
}

// similarToIdentity flags a password that contains, or is contained in,
// the user's identifier (or the local part of their email).
func similarToIdentity(password, identity string) bool {
	if identity == "" {
		return false
	}
	p := strings.ToLower(password)
	id := strings.ToLower(identity)
	if at := strings.Index(id, "@"); at > 0 {
		id = id[:at]
	}
	if len(id) < 4 {
		return false
	}
	return strings.Contains(p, id) || strings.Contains(id, p)
}
