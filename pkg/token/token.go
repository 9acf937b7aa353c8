package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// PurposePasswordReset tags single-use reset tokens so they cannot be replayed
// as access tokens.
const PurposePasswordReset = "password_reset"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongPurpose = errors.New("token purpose mismatch")
)

// RoleAdmin is the role string granting the cross-resource admin override.
const RoleAdmin = "admin"

// AccessClaims are the claims carried by a bearer access token.
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// CanModify reports whether the bearer may modify a resource owned by
// ownerID: the owner themselves, or any admin. The same rule covers posts,
// comments, stories and messages.
func (c *AccessClaims) CanModify(ownerID uint) bool {
	return c.UserID == ownerID || c.Role == RoleAdmin
}

// ResetClaims are the claims carried by a password-reset token.
type ResetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens.
type Manager struct {
	secret        []byte
	accessTTL     time.Duration
	resetTokenTTL time.Duration
}

func NewManager(secret string, accessTTL, resetTokenTTL time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		resetTokenTTL: resetTokenTTL,
	}
}

// IssueAccessToken signs a bearer token carrying the user id and role.
func (m *Manager) IssueAccessToken(userID uint, role string) (string, error) {
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyAccessToken parses a bearer token and returns its claims.
func (m *Manager) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueResetToken signs a short-lived token usable only for password reset.
func (m *Manager) IssueResetToken(email string) (string, error) {
	claims := ResetClaims{
		Email:   email,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.resetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyResetToken parses a reset token, checking the purpose tag in addition
// to signature and expiry.
func (m *Manager) VerifyResetToken(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return m.secret, nil
}
