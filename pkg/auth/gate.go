// Package auth guards admin operations with a single shared password.
//
// The configured ADMIN_PASSWORD is either plain text, compared in constant
// time, or a bcrypt hash ($2a$, $2b$ or $2y$ prefix) produced by
// `dosaspot password:hash`. No tokens or sessions are issued; every admin
// request carries the password again.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/metrics"
)

// ErrInvalidPassword is returned by Gate.Check for any mismatch.
var ErrInvalidPassword = apperr.Unauthorized("Invalid admin password")

// Gate checks candidates against the configured admin password.
type Gate struct {
	secret string
	hashed bool
}

// NewGate builds a Gate for secret. An empty secret rejects every candidate.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret, hashed: isBcrypt(secret)}
}

// Verify reports whether candidate matches the admin password.
func (g *Gate) Verify(candidate string) bool {
	if g == nil || g.secret == "" || candidate == "" {
		return false
	}
	if g.hashed {
		return CheckPassword(g.secret, candidate)
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(candidate)) == 1
}

// Check returns ErrInvalidPassword unless candidate matches. Failures are
// counted in dosaspot_admin_auth_failures_total.
func (g *Gate) Check(candidate string) error {
	if g.Verify(candidate) {
		return nil
	}
	metrics.AdminAuthFailures.Inc()
	return ErrInvalidPassword
}

func isBcrypt(s string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
