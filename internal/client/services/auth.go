// Package services contains the application services of the casekeeper
// client: authentication, category and IAM administration, patient case
// browsing, and the test-result editing session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read from an access token without the
// signing key.
type TokenInfo struct {
	Subject   string
	Email     string
	Roles     []string
	ExpiresAt *time.Time
}

// Expired reports whether the token is past its expiry at t.
func (i TokenInfo) Expired(t time.Time) bool {
	return i.ExpiresAt != nil && !t.Before(*i.ExpiresAt)
}

// AuthService stores the backend access token and hands it to the API
// client.
//
// The token is issued by the backend's sign-in flow and pasted by the user;
// the client never verifies its signature, it only reads claims for display
// and expiry warnings.
type AuthService interface {
	client.TokenSource

	Login(ctx context.Context, token string) (*TokenInfo, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*TokenInfo, error)
}

type authService struct {
	meta metadata.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewAuthService(meta metadata.Repository, log logging.Logger) AuthService {
	return &authService{meta: meta, log: log, now: time.Now}
}

// InspectToken parses a JWT without verifying it.
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	info := &TokenInfo{}
	info.Subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	info.Roles = rolesClaim(claims)
	return info, nil
}

// rolesClaim reads roles from "roles", "authorities" or a space separated
// "scope".
func rolesClaim(claims jwt.MapClaims) []string {
	for _, key := range []string{"roles", "authorities"} {
		switch v := claims[key].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case string:
			return strings.Split(v, ",")
		}
	}
	if scope, ok := claims["scope"].(string); ok && scope != "" {
		return strings.Fields(scope)
	}
	return nil
}

// stripBearer removes surrounding spaces and an optional "Bearer" scheme,
// matched case-insensitively.
func stripBearer(token string) string {
	token = strings.TrimSpace(token)
	scheme := strings.TrimSpace(common.BearerPrefix)
	if len(token) >= len(scheme) && strings.EqualFold(token[:len(scheme)], scheme) {
		rest := token[len(scheme):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			token = strings.TrimSpace(rest)
		}
	}
	return token
}

func (a *authService) Login(ctx context.Context, token string) (*TokenInfo, error) {
	token = stripBearer(token)
	if token == "" {
		return nil, common.ErrNoToken
	}

	info, err := InspectToken(token)
	if err != nil {
		return nil, err
	}
	if info.Expired(a.now()) {
		return info, common.ErrTokenExpired
	}

	if err := a.meta.Set(ctx, metadata.KeyAccessToken, []byte(token)); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	a.log.Info(ctx, "access token stored", "subject", info.Subject)
	return info, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.meta.Delete(ctx, metadata.KeyAccessToken)
}

func (a *authService) Status(ctx context.Context) (*TokenInfo, error) {
	token, err := a.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return InspectToken(token)
}

// AccessToken returns the stored token. An expired token is still returned
// so the backend gives the authoritative answer.
func (a *authService) AccessToken(ctx context.Context) (string, error) {
	b, err := a.meta.Get(ctx, metadata.KeyAccessToken)
	if errors.Is(err, metadata.ErrKeyNotFound) {
		return "", common.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}

	token := string(b)
	if info, err := InspectToken(token); err == nil && info.Expired(a.now()) {
		a.log.Warn(ctx, "access token has expired; run login again", "expired_at", info.ExpiresAt)
	}
	return token, nil
}

// Invalidate drops a token the backend rejected.
func (a *authService) Invalidate(ctx context.Context) error {
	a.log.Warn(ctx, "backend rejected the access token; it was removed")
	return a.meta.Delete(ctx, metadata.KeyAccessToken)
}
