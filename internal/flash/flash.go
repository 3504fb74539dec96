// Package flash implements redirect-surviving flash messages. Messages are
// queued in Redis under a per-browser session id; the session id travels in
// a JWT-signed cookie so it cannot be forged or swapped. When Redis is not
// available the store degrades to a no-op and pages simply render without
// flashes.
package flash

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	cookieName = "ticket_session"
	keyPrefix  = "flash:"
	flashTTL   = 10 * time.Minute
)

// Message is one flash entry: a category for styling ("success", "info",
// "error") and the text shown to the user.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store queues and drains flash messages. A nil Redis client disables the
// store without affecting request handling.
type Store struct {
	client *redis.Client
	secret string
}

// NewStore builds a Store around a Redis client (which may be nil) and the
// cookie-signing secret.
func NewStore(client *redis.Client, secret string) *Store {
	return &Store{client: client, secret: secret}
}

// sessionID returns the session id for the current browser, minting and
// setting a fresh signed cookie when none is present or the existing one
// fails validation.
func (s *Store) sessionID(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil {
		if sid, err := parseSession(s.secret, cookie.Value); err == nil {
			return sid, nil
		}
	}
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	signed, err := signSession(s.secret, sid)
	if err != nil {
		return "", err
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}

// Add queues a flash message for the current session. Failures are logged
// and swallowed: a missing flash must never fail the request that caused it.
func (s *Store) Add(c echo.Context, category, text string) {
	if s == nil || s.client == nil {
		return
	}
	sid, err := s.sessionID(c)
	if err != nil {
		log.Printf("flash: session id: %v", err)
		return
	}
	body, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		log.Printf("flash: marshal: %v", err)
		return
	}
	ctx := c.Request().Context()
	key := keyPrefix + sid
	if err := s.client.RPush(ctx, key, body).Err(); err != nil {
		log.Printf("flash: push: %v", err)
		return
	}
	if err := s.client.Expire(ctx, key, flashTTL).Err(); err != nil {
		log.Printf("flash: expire: %v", err)
	}
}

// Pop drains and returns all queued flash messages for the current session.
// The read-and-delete is not atomic; losing a flash under a concurrent
// request race is acceptable for UI notices.
func (s *Store) Pop(c echo.Context) []Message {
	if s == nil || s.client == nil {
		return nil
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return nil
	}
	sid, err := parseSession(s.secret, cookie.Value)
	if err != nil {
		return nil
	}
	ctx := c.Request().Context()
	key := keyPrefix + sid
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("flash: del: %v", err)
	}
	out := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}
