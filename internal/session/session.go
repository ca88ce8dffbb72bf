// Package session keeps the logged-in identity and pending flash messages in
// a signed cookie. Nothing is stored on the server; the cookie is an HS256
// token signed with the configured secret.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pizza-orders/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const CookieName = "pizza_session"

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Claims struct {
	Email   string          `json:"email,omitempty"`
	Role    models.UserRole `json:"role,omitempty"`
	Flashes []Flash         `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

type Session struct {
	Email   string
	Role    models.UserRole
	flashes []Flash
	changed bool
}

func (s *Session) Authenticated() bool { return s.Email != "" }

func (s *Session) Login(email string, role models.UserRole) {
	s.Email = email
	s.Role = role
	s.changed = true
}

// Logout clears the identity but keeps pending flashes.
func (s *Session) Logout() {
	s.Email = ""
	s.Role = ""
	s.changed = true
}

func (s *Session) Flash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.changed = true
}

// Flashes returns and clears the pending flash messages.
func (s *Session) Flashes() []Flash {
	out := s.flashes
	if len(out) > 0 {
		s.flashes = nil
		s.changed = true
	}
	return out
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	logger zerolog.Logger
}

func NewManager(secret string, ttl time.Duration, secure bool, logger zerolog.Logger) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// Load decodes the session cookie. A missing, tampered or expired cookie
// yields an empty session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		m.logger.Warn().Err(err).Msg("Discarding invalid session cookie")
		return &Session{changed: true}
	}

	return &Session{
		Email:   claims.Email,
		Role:    claims.Role,
		flashes: claims.Flashes,
	}
}

// Save writes the cookie if the session changed since Load.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if !s.changed {
		return nil
	}

	if !s.Authenticated() && len(s.flashes) == 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		s.changed = false
		return nil
	}

	now := time.Now()
	claims := &Claims{
		Email:   s.Email,
		Role:    s.Role,
		Flashes: s.flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		m.logger.Error().Err(err).Msg("Error signing session")
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.changed = false
	return nil
}

type contextKey struct{}

// Middleware loads the session into the request context. Handlers save it
// themselves before writing a response because headers cannot be set after
// the body starts.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := NewContext(r.Context(), m.Load(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

var ErrNoSession = errors.New("no session in context")

func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}
