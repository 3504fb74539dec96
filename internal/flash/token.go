package flash

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionTTL bounds how long a flash session cookie stays valid. Flashes
// themselves expire much sooner; the cookie only has to outlive a redirect.
const sessionTTL = 24 * time.Hour

var errInvalidSession = errors.New("invalid session token")

// newSessionID returns a cryptographically secure random session identifier.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// signSession wraps a session id into an HS256 JWT signed with the
// application secret. The JWT includes standard claims: subject (sub),
// expiration (exp) and issued at (iat).
func signSession(secret, sid string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": sid,
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseSession validates a session cookie value and returns the embedded
// session id. The signing method is pinned to HMAC so a token signed with
// a different algorithm is rejected.
func parseSession(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidSession
	}
	sid, ok := claims["sub"].(string)
	if !ok || sid == "" {
		return "", errInvalidSession
	}
	return sid, nil
}
