package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Discord API endpoints
const (
	discordAPIURL       = "https://discord.com/api/v10"
	discordAuthorizeURL = "https://discord.com/api/oauth2/authorize"
	discordTokenURL     = "https://discord.com/api/oauth2/token"
)

// stateTokenTTL bounds how long an issued OAuth2 state parameter stays valid.
const stateTokenTTL = 10 * time.Minute

// ErrUnauthorized marks a missing, expired or otherwise unverifiable bearer
// credential.
var ErrUnauthorized = errors.New("unauthorized")

// IdentityService resolves a bearer credential to a stable user id. Tokens
// are short-lived and re-verified on every request; identities are never
// cached.
type IdentityService interface {
	VerifyToken(ctx context.Context, bearer string) (string, error)
}

// OAuthService covers the code-grant glue against the identity provider.
type OAuthService interface {
	AuthCodeURL() (string, error)
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	VerifyState(state string) error
}

// DiscordService implements IdentityService and OAuthService against the
// Discord API.
type DiscordService struct {
	client      *resty.Client
	oauthConfig *oauth2.Config
	stateSecret []byte
}

// NewDiscordService creates the Discord identity/OAuth2 client. stateSecret
// signs the OAuth2 state parameter handed out with the authorize URL.
func NewDiscordService(clientID, clientSecret, redirectURL, stateSecret string) *DiscordService {
	client := resty.New().
		SetBaseURL(discordAPIURL).
		SetTimeout(10 * time.Second)

	return &DiscordService{
		client: client,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthorizeURL,
				TokenURL: discordTokenURL,
			},
		},
		stateSecret: []byte(stateSecret),
	}
}

type discordUser struct {
	ID string `json:"id"`
}

// VerifyToken exchanges a bearer token for the Discord user id behind it.
func (s *DiscordService) VerifyToken(ctx context.Context, bearer string) (string, error) {
	var user discordUser
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(bearer).
		SetResult(&user).
		Get("/users/@me")
	if err != nil {
		return "", fmt.Errorf("identity lookup failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || user.ID == "" {
		return "", ErrUnauthorized
	}

	return user.ID, nil
}

// AuthCodeURL builds the provider authorize URL with a signed state token.
func (s *DiscordService) AuthCodeURL() (string, error) {
	now := time.Now()
	state := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTokenTTL)),
	})

	signed, err := state.SignedString(s.stateSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}

	return s.oauthConfig.AuthCodeURL(signed), nil
}

// VerifyState checks the signature and expiry of a returned state token.
func (s *DiscordService) VerifyState(state string) error {
	_, err := jwt.Parse(state, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.stateSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid state token: %w", err)
	}
	return nil
}

// Exchange trades an authorization code for an access/refresh token pair.
func (s *DiscordService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		slog.Warn("OAuth2 code exchange failed", "error", err)
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return token, nil
}

// Refresh trades a refresh token for a fresh token pair.
func (s *DiscordService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := s.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		slog.Warn("OAuth2 token refresh failed", "error", err)
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return token, nil
}
