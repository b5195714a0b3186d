package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/colegioapp/colegio/internal/api"
)

// Session is the authenticated identity and credential held by the client.
// There is at most one live Session per process, owned by the Store; the role
// is immutable for the session's lifetime, changing it requires a fresh login.
type Session struct {
	User         api.User
	Token        string
	RefreshToken string
}

// DisplayName returns the user's name for greetings and status output.
func (s *Session) DisplayName() string {
	if s.User.FirstName == "" && s.User.LastName == "" {
		return s.User.Username
	}
	if s.User.LastName == "" {
		return s.User.FirstName
	}
	return s.User.FirstName + " " + s.User.LastName
}

// tokenExpired reports whether the access token is a JWT whose exp claim is in
// the past. Opaque tokens can't be checked locally and are trusted as-is; the
// backend will reject them with a 401 if they have gone stale.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
