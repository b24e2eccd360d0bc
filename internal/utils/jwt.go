package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are presented in the
// Authorization header when calling protected endpoints; there is no
// refresh mechanism, so an expired token requires a fresh login.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenIdentity is the set of claims embedded in an access token that
// downstream authorization cares about: the user's id, email and role.
type TokenIdentity struct {
	UserID uint64
	Email  string
	Role   string
}

// ErrTokenInvalid covers every verification failure uniformly: bad
// signature, malformed token, or expiry. Callers must not distinguish
// between these cases in responses.
var ErrTokenInvalid = errors.New("token invalid")

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's identity fields and a TTL in minutes, and
// returns an AccessToken containing the signed token and its expiration
// time. The claims carry the user id under "id" and the email under
// "email" alongside the standard exp/iat pair.
func NewAccessToken(secret string, userID uint64, email, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token string
// and extracts the embedded identity. Any failure is reported as
// ErrTokenInvalid so handlers present a single uniform 401.
func ParseAccessToken(secret, raw string) (TokenIdentity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenIdentity{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenIdentity{}, ErrTokenInvalid
	}
	var ident TokenIdentity
	// JWT numeric values decode as float64.
	if id, ok := claims["id"].(float64); ok {
		ident.UserID = uint64(id)
	}
	if ident.UserID == 0 {
		return TokenIdentity{}, ErrTokenInvalid
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		ident.Role = role
	}
	return ident, nil
}
