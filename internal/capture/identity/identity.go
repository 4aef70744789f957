// Package identity resolves the account signed in on the host, the way a
// browser exposes the signed-in profile to an extension.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccountStatus selects which accounts a lookup may consider.
type AccountStatus string

const (
	// AccountAny accepts any signed-in account.
	AccountAny AccountStatus = "ANY"
	// AccountSync accepts only an account with sync enabled.
	AccountSync AccountStatus = "SYNC"
)

// ErrNoProvider is returned when no identity provider is configured.
var ErrNoProvider = errors.New("identity provider unavailable")

// Profile is the signed-in account. Email may be empty.
type Profile struct {
	ID    string
	Email string
}

// Capability looks up the signed-in profile.
type Capability interface {
	ProfileUserInfo(ctx context.Context, status AccountStatus) (Profile, error)
}

// StaticProvider returns a configured profile.
type StaticProvider struct {
	profile Profile
	synced  bool
}

// NewStatic returns a provider for a fixed email; an empty email yields a
// profile without an email.
func NewStatic(email string) *StaticProvider {
	p := Profile{Email: email}
	if email != "" {
		p.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
	}
	return &StaticProvider{profile: p, synced: email != ""}
}

func (s *StaticProvider) ProfileUserInfo(_ context.Context, status AccountStatus) (Profile, error) {
	if status == AccountSync && !s.synced {
		return Profile{}, nil
	}
	return s.profile, nil
}

// Claims carried by an identity token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenProvider reads the profile from an HS256-signed ID token. The token is
// verified on every lookup, so an expired token starts failing without restart.
type TokenProvider struct {
	token      string
	signingKey []byte
}

// NewToken returns a provider for token signed with signingKey.
func NewToken(token, signingKey string) *TokenProvider {
	return &TokenProvider{token: strings.TrimSpace(token), signingKey: []byte(signingKey)}
}

func (p *TokenProvider) ProfileUserInfo(_ context.Context, _ AccountStatus) (Profile, error) {
	parsed, err := jwt.ParseWithClaims(p.token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return p.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Profile{}, fmt.Errorf("identity token has expired: %w", err)
		}
		return Profile{}, fmt.Errorf("invalid identity token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Profile{}, errors.New("invalid identity token")
	}
	return Profile{ID: claims.Subject, Email: claims.Email}, nil
}

// SignToken issues an identity token for email, for provisioning and tests.
func SignToken(signingKey, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString([]byte(signingKey))
}

// Unavailable is the capability used when nothing is configured.
type Unavailable struct{}

func (Unavailable) ProfileUserInfo(context.Context, AccountStatus) (Profile, error) {
	return Profile{}, ErrNoProvider
}

// FromConfig picks a provider: a token wins over a static email.
func FromConfig(email, token, tokenKey string) Capability {
	switch {
	case token != "":
		return NewToken(token, tokenKey)
	case email != "":
		return NewStatic(email)
	default:
		return Unavailable{}
	}
}
