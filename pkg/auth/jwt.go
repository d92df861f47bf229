package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims holds the typed JWT payload. The user id travels as a decimal string.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS512 tokens bound to one issuer/audience.
type TokenManager struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenManager(key, issuer, audience string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a signed token for the given user.
func (m *TokenManager) Issue(userID uint, role string) (string, error) {
	now := m.now()
	claims := Claims{
		ID:   strconv.FormatUint(uint64(userID), 10),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.key)
}

// Parse validates signature, algorithm, expiry, issuer and audience.
func (m *TokenManager) Parse(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Verify never fails: any problem with the token yields the zero Identity,
// which callers treat as unauthenticated.
func (m *TokenManager) Verify(t string) Identity {
	claims, err := m.Parse(t)
	if err != nil {
		return Identity{}
	}
	id, err := strconv.ParseUint(claims.ID, 10, 64)
	if err != nil || id == 0 {
		return Identity{}
	}
	return Identity{UserID: uint(id), Role: claims.Role}
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
